// Package extract recognizes C++ declarations in a token stream.
//
// The extractor is structural: it balances brackets, follows namespace,
// class and enum bodies and splits declarations into declarators, but it
// does no name lookup or type analysis. Function bodies and initializers are
// skipped as balanced token groups. A declaration that cannot be recognized is
// reported as SYN2101 and skipped up to the next ';' or balanced '}' at the
// same depth; extraction never aborts.
package extract

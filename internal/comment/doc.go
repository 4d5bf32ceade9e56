// Package comment extracts documentation comment blocks from a token stream.
//
// The scanner looks only at trivia: a run of same-style line doc comments
// (/// or //!) becomes one Block as long as nothing but whitespace and
// ordinary comments separates the lines; every /** */ or /*! */ comment is a
// Block of its own. The trailing forms ///<, //!<, /**< and /*!< produce
// blocks with Trailing set. Declarations are never inspected.
package comment

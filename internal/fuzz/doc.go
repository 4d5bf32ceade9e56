// Package fuzztests houses Go fuzz harnesses that exercise the correlation
// pipeline (source -> lexer -> comment scanner -> extractor -> correlator).
// Its goal is to smoke test robustness and guard against panics, hangs and
// broken model invariants on arbitrary inputs.
//
// Назначение: запускать fuzz-обработчики, которые загружают байты в FileSet и
// прогоняют их через все проходы.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/comment,
// internal/extract, internal/correlate, internal/directive, internal/testkit.
package fuzztests

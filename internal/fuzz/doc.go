// Package fuzztests houses Go fuzz harnesses for the lexer and the formatter.
// Arbitrary input must never panic, and whatever formats successfully must
// survive the round-trip check.
//
// Назначение: прогонять байты через FileSet, лексер и форматтер.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/format, internal/config.

package fuzztests

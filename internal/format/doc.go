// Package format re-emits RSN source with canonical whitespace.
//
// The formatter makes a single pass over the token stream. At every opening delimiter it forks
// the lexer and tries to render the whole group on one line; when the attempt fails or the line
// would reach max_width, it breaks the group across indented lines and continues from the saved
// position.
//
// Назначение: каноническое форматирование одного RSN-документа.
// Не делает: чтения/записи файлов и поиска конфигурации (см. internal/driver, internal/config).
// Зависимости: internal/lexer, internal/token, internal/config.
package format

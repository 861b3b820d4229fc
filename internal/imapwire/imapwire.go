// Package imapwire implements the lexical layer of IMAP server responses.
//
// The IMAP wire protocol is defined in RFC 3501 section 4 and RFC 9051
// section 4. The lexer here is more lenient than the RFC: it admits the
// extra punctuation servers send in FETCH responses, and its number rule can
// be swapped for one accepting negative numbers.
package imapwire

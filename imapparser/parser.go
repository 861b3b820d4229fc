// Package imapparser parses the attribute lists of IMAP FETCH responses.
//
// The baseline grammar covers the RFC 3501 message attributes. Vendor
// extensions such as Gmail's X-GM-LABELS, X-GM-MSGID and X-GM-THRID are
// installed on a Parser with Install or InstallExtensions.
package imapparser

import (
	"log"
	"mime"
	"sort"

	"github.com/emersion/go-message/charset"

	"github.com/gmimap/go-gmimap"
	"github.com/gmimap/go-gmimap/internal/imapwire"
)

// Logger receives warnings from the parser.
type Logger interface {
	Printf(format string, args ...interface{})
}

// Options contains options for Parser.
type Options struct {
	// Extensions are installed when the parser is created.
	Extensions []*Extension
	// Decodes RFC 2047 encoded-words in envelope subjects and address names.
	// Defaults to a decoder which knows the charsets supported by go-message.
	WordDecoder *mime.WordDecoder
	// Unknown attribute names are logged here. Defaults to log.Default().
	Logger Logger
}

var defaultWordDecoder = &mime.WordDecoder{CharsetReader: charset.Reader}

func (options *Options) logger() Logger {
	if options.Logger == nil {
		return log.Default()
	}
	return options.Logger
}

func (options *Options) wordDecoder() *mime.WordDecoder {
	if options.WordDecoder == nil {
		return defaultWordDecoder
	}
	return options.WordDecoder
}

func (options *Options) decodeText(s string) string {
	out, err := options.wordDecoder().DecodeHeader(s)
	if err != nil {
		return s
	}
	return out
}

// AttrParser parses the value of a message attribute. It is called after the
// attribute name has been consumed, with the name in uppercase. It returns
// the key under which the value is stored, usually name itself.
type AttrParser func(dec *Decoder, name string) (string, gmimap.AttributeValue, error)

// Extension is a set of vendor attributes.
type Extension struct {
	Name  string
	Attrs map[string]AttrParser
	// Switch the tokenizer to signed numbers.
	SignedNumbers bool
}

// Gmail is the Gmail IMAP extension.
var Gmail = &Extension{
	Name: "X-GM-EXT-1",
	Attrs: map[string]AttrParser{
		gmimap.AttrGmailLabels:   readLabels,
		gmimap.AttrGmailMsgID:    readUniqueID,
		gmimap.AttrGmailThreadID: readUniqueID,
	},
	SignedNumbers: true,
}

// Parser parses FETCH responses.
//
// A Parser must be fully configured before it's used: Install and
// InstallExtensions are not safe for concurrent use, but parsing is.
type Parser struct {
	options   Options
	attrs     map[string]AttrParser
	grammar   imapwire.Grammar
	installed map[string]bool
}

// New creates a parser with the baseline grammar.
//
// A nil options pointer is equivalent to a zero options value.
func New(options *Options) *Parser {
	if options == nil {
		options = &Options{}
	}

	p := &Parser{
		options: *options,
		attrs: map[string]AttrParser{
			gmimap.AttrEnvelope:      readEnvelope,
			gmimap.AttrFlags:         readFlags,
			gmimap.AttrInternalDate:  readInternalDate,
			gmimap.AttrRFC822:        readText,
			gmimap.AttrRFC822Header:  readText,
			gmimap.AttrRFC822Text:    readText,
			gmimap.AttrRFC822Size:    readSize,
			gmimap.AttrBody:          readBody,
			gmimap.AttrBodyStructure: readBody,
			gmimap.AttrUID:           readUniqueID,
		},
		grammar:   imapwire.BaseGrammar(),
		installed: make(map[string]bool),
	}
	p.Install(options.Extensions...)
	return p
}

// Install adds extensions to the parser. Installing an extension which is
// already installed is a no-op.
func (p *Parser) Install(exts ...*Extension) {
	for _, ext := range exts {
		if p.installed[ext.Name] {
			continue
		}
		for name, f := range ext.Attrs {
			p.attrs[name] = f
		}
		if ext.SignedNumbers {
			p.grammar = p.grammar.With(imapwire.SignedNumberRule)
		}
		p.installed[ext.Name] = true
	}
}

// InstallExtensions installs all vendor extensions known to this package.
// It can be called any number of times.
func (p *Parser) InstallExtensions() {
	p.Install(Gmail)
}

// Installed reports whether an extension is installed.
func (p *Parser) Installed(name string) bool {
	return p.installed[name]
}

// Attrs returns the sorted names of the attributes the parser knows.
func (p *Parser) Attrs() []string {
	names := make([]string, 0, len(p.attrs))
	for name := range p.attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (p *Parser) newDecoder(b []byte) *Decoder {
	return newDecoder(b, p.grammar, &p.options)
}

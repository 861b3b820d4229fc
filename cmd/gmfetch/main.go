// Command gmfetch parses raw untagged FETCH responses, as captured from an
// IMAP session, and prints each one as a JSON line.
package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"io"
	"log"
	"os"

	"github.com/gmimap/go-gmimap"
	"github.com/gmimap/go-gmimap/imapparser"
)

var (
	input string
	gmail bool
	debug bool
)

type output struct {
	SeqNum uint32               `json:"seq"`
	Attrs  *gmimap.AttributeMap `json:"attrs"`
}

func main() {
	flag.StringVar(&input, "input", "", "File to read responses from (default stdin)")
	flag.BoolVar(&gmail, "gmail", true, "Enable the Gmail extensions")
	flag.BoolVar(&debug, "debug", false, "Print all responses")
	flag.Parse()

	r := io.Reader(os.Stdin)
	if input != "" {
		f, err := os.Open(input)
		if err != nil {
			log.Fatalf("Failed to open input: %v", err)
		}
		defer f.Close()
		r = f
	}

	var exts []*imapparser.Extension
	if gmail {
		exts = append(exts, imapparser.Gmail)
	}
	p := imapparser.New(&imapparser.Options{Extensions: exts})

	bw := bufio.NewWriter(os.Stdout)
	defer bw.Flush()

	if err := run(p, newResponseReader(r), json.NewEncoder(bw)); err != nil {
		bw.Flush()
		log.Fatal(err)
	}
}

func run(p *imapparser.Parser, rr *responseReader, enc *json.Encoder) error {
	for {
		b, err := rr.ReadResponse()
		if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return err
		}
		if debug {
			log.Printf("S: %q", b)
		}

		resp, err := p.ParseFetch(b)
		if err != nil {
			return err
		}
		if err := enc.Encode(output{SeqNum: resp.SeqNum, Attrs: resp.Attrs}); err != nil {
			return err
		}
	}
}

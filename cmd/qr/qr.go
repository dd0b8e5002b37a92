// Copyright 2025 Jeremy Reyland.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Qr is a command line QR code generator.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"syscall"

	"github.com/jerey17/qr"
	"github.com/jerey17/qr/coding"

	"github.com/mattn/go-isatty"
	"github.com/pborman/getopt/v2"
)

var g = struct {
	scale   int            // image pixels per module
	border  int            // quiet zone
	fn      string         // output filename
	lev     qr.Level       // error correction level
	ver     coding.Version // forced version, 0 for automatic
	format  string         // output format
	latin1  bool           // Latin-1 byte mode
	nokanji bool           // kanji mode disabled
	upper   bool           // uppercase input
}{}

var formats = []string{"png", "pbm", "utf8", "ascii"}

var encoders = map[string]func(*qr.Code, io.Writer) error{
	"png":   (*qr.Code).PNG,
	"pbm":   (*qr.Code).EncodePBM,
	"utf8":  utf8Blocks,
	"ascii": ascii,
}

type opt func()

func (opt) String() string                    { return "" }
func (o opt) Set(string, getopt.Option) error { o(); return nil }

func printUsage(w io.Writer) {
	cl := getopt.CommandLine
	fmt.Fprint(w, "QR code generator\nUsage: ", cl.Program(), " ",
		cl.UsageLine(), ` [string ...]
If no string is given, data is read from standard input and the final
newline is stripped.
`)
	cl.PrintOptions(w)
}

func usage() {
	printUsage(os.Stderr)
	os.Exit(2)
}

func help() {
	printUsage(os.Stdout)
	os.Exit(0)
}

func parseFlags() {
	getopt.SetUsage(usage)
	getopt.Flag(opt(help), 'h', "show this help").SetFlag()
	getopt.FlagLong(&g.latin1, "latin1", '1',
		"encode byte mode segments as Latin-1")
	getopt.FlagLong(&g.nokanji, "no-kanji", 'K', "disable kanji mode")
	getopt.Flag(&g.upper, 'i', "ignore case, convert input to uppercase")
	getopt.FlagLong(&g.fn, "output", 'o',
		`output file, or "-" for standard output`, "file")
	lev := getopt.Enum('l',
		[]string{"l", "m", "q", "h", "L", "M", "Q", "H"}, "l",
		"error correction level, lowest to highest", "l|m|q|h")
	ver := getopt.Unsigned('v', 0, &getopt.UnsignedLimit{Base: 0, Bits: 8, Min: 0, Max: 40},
		"QR code version, 0 for automatic", "ver")
	scale := getopt.Unsigned('s', 8, &getopt.UnsignedLimit{Base: 0, Bits: 16, Min: 1, Max: 1 << 16},
		`image pixels per module; ignored for types utf8 and ascii`,
		"scale")
	border := getopt.Unsigned('m', 4, &getopt.UnsignedLimit{Base: 0, Bits: 8, Min: 0, Max: 100},
		"quiet zone width in modules", "margin")
	ff := getopt.Enum('t', formats, "",
		"output format, one of: "+strings.Join(formats, ", ")+
			"; if no -o is given and standard output is a TTY, "+
			"default is utf8, otherwise png", "type")

	getopt.Parse()
	g.scale = int(*scale)
	g.border = int(*border)
	g.ver = coding.Version(*ver)
	g.lev = qr.Level(strings.Index("lmqhLMQH", *lev) & 3)
	if *ff == "" {
		if !getopt.IsSet('o') && isatty.IsTerminal(uintptr(syscall.Stdout)) {
			*ff = "utf8"
		} else {
			*ff = "png"
		}
	}
	g.format = *ff
	if g.fn == "-" {
		g.fn = ""
	}
}

func main() {
	log.SetFlags(0)
	parseFlags()

	var s string
	if args := getopt.Args(); len(args) != 0 {
		s = strings.Join(args, " ")
	} else {
		var b strings.Builder
		if _, err := io.Copy(&b, os.Stdin); err != nil {
			log.Fatalln(err)
		}
		s, _ = strings.CutSuffix(
			strings.ReplaceAll(b.String(), "\r\n", "\n"), "\n")
	}
	if g.upper {
		s = strings.ToUpper(s)
	}

	c, err := qr.EncodeOptions(s, g.lev, qr.Options{
		Version: g.ver,
		Latin1:  g.latin1,
		NoKanji: g.nokanji,
	})
	if err != nil {
		log.Fatalln(err)
	}
	c.Scale = g.scale
	c.Border = g.border

	w := os.Stdout
	if g.fn != "" {
		if w, err = os.Create(g.fn); err != nil {
			log.Fatalln(err)
		}
	}
	err = encoders[g.format](c, w)
	if g.fn != "" && err == nil {
		err = w.Close()
	}
	if err != nil {
		log.Fatalln(err)
	}
}

// utf8Blocks writes the code to w using Unicode half block characters
// in inverse video, two modules per character cell.
func utf8Blocks(c *qr.Code, w io.Writer) error {
	siz := c.Size
	bord := c.Border
	var b strings.Builder
	for y := -bord; y < siz+bord; y += 2 {
		for x := -bord; x < siz+bord; x++ {
			n := 0
			if c.Black(x, y) {
				n = 2
			}
			if c.Black(x, y+1) {
				n++
			}
			b.WriteString([4]string{"█", "▀", "▄", " "}[n])
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func ascii(c *qr.Code, w io.Writer) error {
	siz := c.Size
	bord := c.Border
	pix := siz + 2*bord
	b := make([]byte, (pix*2+1)*pix)
	i := 0
	for y := -bord; y < siz+bord; y++ {
		for x := -bord; x < siz+bord; x++ {
			var p byte = ' '
			if c.Black(x, y) {
				p = '#'
			}
			b[i], b[i+1] = p, p
			i += 2
		}
		b[i] = '\n'
		i++
	}
	_, err := w.Write(b)
	return err
}

// Command vpack converts between JSON text and the VPack binary encoding
// and prints structural information about an encoded value.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	vpack "github.com/arangodb/go-velocypack"
	"github.com/arangodb/go-velocypack/parser"
)

func main() {
	app := &cli.App{
		Name:  "vpack",
		Usage: "convert between JSON and VPack, and inspect VPack values",
		Commands: []*cli.Command{
			encodeCommand,
			decodeCommand,
			infoCommand,
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "vpack:", err)
		os.Exit(1)
	}
}

var inputFlag = &cli.StringFlag{
	Name:    "in",
	Aliases: []string{"i"},
	Usage:   "input file (default stdin)",
}

var outputFlag = &cli.StringFlag{
	Name:    "out",
	Aliases: []string{"o"},
	Usage:   "output file (default stdout)",
}

func readInput(c *cli.Context) ([]byte, error) {
	if path := c.String("in"); path != "" {
		return os.ReadFile(path)
	}
	return io.ReadAll(os.Stdin)
}

func writeOutput(c *cli.Context, data []byte) error {
	if path := c.String("out"); path != "" {
		return os.WriteFile(path, data, 0o644)
	}
	_, err := os.Stdout.Write(data)
	return err
}

var encodeCommand = &cli.Command{
	Name:  "encode",
	Usage: "parse JSON and emit its VPack encoding",
	Flags: []cli.Flag{inputFlag, outputFlag},
	Action: func(c *cli.Context) error {
		data, err := readInput(c)
		if err != nil {
			return err
		}
		slice, err := parser.Parse(data)
		if err != nil {
			return err
		}
		return writeOutput(c, slice.Bytes())
	},
}

var decodeCommand = &cli.Command{
	Name:  "decode",
	Usage: "read a VPack value and emit canonical JSON",
	Flags: []cli.Flag{inputFlag, outputFlag,
		&cli.BoolFlag{Name: "escape-unicode"},
		&cli.BoolFlag{Name: "escape-forward-slashes"},
	},
	Action: func(c *cli.Context) error {
		data, err := readInput(c)
		if err != nil {
			return err
		}
		opts := vpack.DefaultOptions()
		opts.EscapeUnicode = c.Bool("escape-unicode")
		opts.EscapeForwardSlashes = c.Bool("escape-forward-slashes")
		slice := vpack.NewSliceWithOptions(data, opts)
		text, err := slice.ToJSON()
		if err != nil {
			return err
		}
		return writeOutput(c, append([]byte(text), '\n'))
	},
}

var infoCommand = &cli.Command{
	Name:  "info",
	Usage: "print the type and byte size of a VPack value",
	Flags: []cli.Flag{inputFlag},
	Action: func(c *cli.Context) error {
		data, err := readInput(c)
		if err != nil {
			return err
		}
		slice := vpack.NewSlice(data)
		size, err := slice.ByteSize()
		if err != nil {
			return err
		}
		fmt.Printf("type: %s\nhead: 0x%02x\nsize: %d bytes\n", slice.Type(), slice.Head(), size)
		if slice.IsArray() || slice.IsObject() {
			n, err := slice.Length()
			if err != nil {
				return err
			}
			fmt.Printf("members: %d\n", n)
		}
		return nil
	},
}

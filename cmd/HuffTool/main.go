package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/op/go-logging"

	"github.com/DbtSpring/Huffman-text-compressor/compressor"
	"github.com/DbtSpring/Huffman-text-compressor/huffman"
)

var log = logging.MustGetLogger("HuffTool")

const progName = "HuffTool"
const usageMessageRaw = `
Usage: HuffTool [--debug] SUBCOMMAND [OPTIONS]

Options:
  --debug, -d
	Log every step of the coding engine to standard error.

Subcommands:
  compress [-i INPUT] [-t TABLE] [-o PACKED] [--strip-newlines]
	Compress the UTF-8 text in INPUT (default $input), writing
	the code table to TABLE (default $table) and the packed
	bitstream to PACKED (default $packed).  With
	--strip-newlines, line terminators are dropped from INPUT.
  decompress [-t TABLE] [-i PACKED] [-o OUTPUT]
	Decode PACKED with TABLE and write the text to OUTPUT
	(default $decoded).
  roundtrip [-i INPUT] [-t TABLE] [-p PACKED] [-o OUTPUT] [--strip-newlines]
	Compress INPUT, then decompress the result into OUTPUT, and
	report whether the text survived.
  inspect [-t TABLE]
	Print the entries, total bit length, and fingerprint of a
	code table, and check that it is prefix-free.
`

const (
	defaultInputPath   = "resources/data.txt"
	defaultTablePath   = "output/codeTable.txt"
	defaultPackedPath  = "output/compressed.bin"
	defaultDecodedPath = "output/decoded.txt"
)

type nullWriter struct{}

func (n *nullWriter) Write(p []byte) (int, error) {
	return len(p), nil
}

var ourFlags *flag.FlagSet

func usageMessage() string {
	template := strings.TrimLeft(usageMessageRaw, "\n")
	replacements := []string{
		"$input", defaultInputPath,
		"$table", defaultTablePath,
		"$packed", defaultPackedPath,
		"$decoded", defaultDecodedPath,
	}
	return strings.NewReplacer(replacements...).Replace(template)
}

func usageErrorf(detailFmt string, detailArgs ...interface{}) {
	detail := fmt.Sprintf(detailFmt, detailArgs...)
	fmt.Fprintf(os.Stderr, "%s: %s\n%s", progName, detail, usageMessage())
	os.Exit(64)
}

func exitError(err error) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", progName, err.Error())
	os.Exit(1)
}

var argI int = 0

func nextArg(expected string) string {
	if !(argI < ourFlags.NArg()) {
		usageErrorf("not enough arguments; expected %s", expected)
	}
	arg := ourFlags.Arg(argI)
	argI++
	return arg
}

func remainingArgs() []string {
	slice := ourFlags.Args()[argI:]
	argI = ourFlags.NArg()
	return slice
}

func endOfArgs() {
	if argI < ourFlags.NArg() {
		usageErrorf("too many arguments at %d (\"%s\")", argI, ourFlags.Arg(argI))
	}
}

// parseSubFlags parses the arguments following the subcommand with subFlags and makes it the current flag
// set, so that endOfArgs checks what is left over.
func parseSubFlags(subFlags *flag.FlagSet) {
	subFlags.Usage = func() {}
	subFlags.SetOutput(&nullWriter{})

	argErr := subFlags.Parse(remainingArgs())
	if argErr == flag.ErrHelp {
		io.WriteString(os.Stdout, usageMessage())
		os.Exit(0)
	} else if argErr != nil {
		usageErrorf("%s", argErr.Error())
	}

	ourFlags = subFlags
	argI = 0
	endOfArgs()
}

func reportWarnings(warnings []*huffman.Warning) {
	if len(warnings) > 0 {
		log.Warningf("%d warnings; output may be incomplete", len(warnings))
	}
}

func compressFromArgs() (func() error, error) {
	subFlags := flag.NewFlagSet(progName, flag.ContinueOnError)
	inputPath := subFlags.String("i", defaultInputPath, "")
	tablePath := subFlags.String("t", defaultTablePath, "")
	packedPath := subFlags.String("o", defaultPackedPath, "")
	stripNewlines := subFlags.Bool("strip-newlines", false, "")
	parseSubFlags(subFlags)

	c := compressor.New(
		compressor.WithStripLineBreaks(*stripNewlines),
		compressor.WithCreateDirs(true),
	)
	return func() error {
		compressed, err := c.CompressFile(*inputPath, *tablePath, *packedPath)
		if err != nil {
			return err
		}
		reportWarnings(compressed.Warnings)
		fmt.Fprintf(os.Stdout, "compressed %d symbols (%d distinct) into %d bits\n",
			compressed.Symbols, compressed.Codes.Len(), compressed.BitLength)
		fmt.Fprintf(os.Stdout, "- code table: %s\n- compressed: %s\n", *tablePath, *packedPath)
		return nil
	}, nil
}

func decompressFromArgs() (func() error, error) {
	subFlags := flag.NewFlagSet(progName, flag.ContinueOnError)
	tablePath := subFlags.String("t", defaultTablePath, "")
	packedPath := subFlags.String("i", defaultPackedPath, "")
	outputPath := subFlags.String("o", defaultDecodedPath, "")
	parseSubFlags(subFlags)

	c := compressor.New(compressor.WithCreateDirs(true))
	return func() error {
		decompressed, err := c.DecompressFile(*packedPath, *tablePath, *outputPath)
		if err != nil {
			return err
		}
		reportWarnings(decompressed.Warnings)
		fmt.Fprintf(os.Stdout, "decompressed %d bits into %d symbols\n- decoded: %s\n",
			decompressed.BitLength, len([]rune(decompressed.Text)), *outputPath)
		return nil
	}, nil
}

func roundtripFromArgs() (func() error, error) {
	subFlags := flag.NewFlagSet(progName, flag.ContinueOnError)
	inputPath := subFlags.String("i", defaultInputPath, "")
	tablePath := subFlags.String("t", defaultTablePath, "")
	packedPath := subFlags.String("p", defaultPackedPath, "")
	outputPath := subFlags.String("o", defaultDecodedPath, "")
	stripNewlines := subFlags.Bool("strip-newlines", false, "")
	parseSubFlags(subFlags)

	c := compressor.New(
		compressor.WithStripLineBreaks(*stripNewlines),
		compressor.WithCreateDirs(true),
	)
	return func() error {
		original, err := compressor.ReadText(*inputPath, *stripNewlines)
		if err != nil {
			return err
		}
		compressed, err := c.CompressFile(*inputPath, *tablePath, *packedPath)
		if err != nil {
			return err
		}
		reportWarnings(compressed.Warnings)
		decompressed, err := c.DecompressFile(*packedPath, *tablePath, *outputPath)
		if err != nil {
			return err
		}
		reportWarnings(decompressed.Warnings)

		fmt.Fprintf(os.Stdout, "files written:\n- code table: %s\n- compressed: %s\n- decoded: %s\n",
			*tablePath, *packedPath, *outputPath)
		if decompressed.Text != original {
			return fmt.Errorf("decoded text differs from %s", *inputPath)
		}
		fmt.Fprintf(os.Stdout, "round trip ok: %d symbols, %d bits\n", compressed.Symbols, compressed.BitLength)
		return nil
	}, nil
}

func inspectFromArgs() (func() error, error) {
	subFlags := flag.NewFlagSet(progName, flag.ContinueOnError)
	tablePath := subFlags.String("t", defaultTablePath, "")
	parseSubFlags(subFlags)

	return func() error {
		data, err := os.ReadFile(*tablePath)
		if err != nil {
			return err
		}
		codes, warnings, err := huffman.ReadTable(bytes.NewReader(data))
		if err != nil {
			return err
		}
		reportWarnings(warnings)

		longest := 0
		for _, entry := range codes.Entries() {
			if entry.Code.Len() > longest {
				longest = entry.Code.Len()
			}
		}
		fmt.Fprintf(os.Stdout, "entries: %d\nlongest code: %d bits\nfingerprint: %s\n",
			codes.Len(), longest, codes.Fingerprint())
		if err := codes.Check(); err != nil {
			fmt.Fprintf(os.Stdout, "consistency: %v\n", err)
		} else {
			fmt.Fprintf(os.Stdout, "consistency: prefix-free\n")
		}
		return nil
	}, nil
}

var leveledLogBackend logging.LeveledBackend

func startLogging() {
	backend := logging.NewLogBackend(os.Stderr, progName+": ", 0)
	formatSpec := "%{color:bold}%{level:6s}%{color:reset} %{module:-20s} | %{message}"
	formatter := logging.MustStringFormatter(formatSpec)
	formatted := logging.NewBackendFormatter(backend, formatter)
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(logging.INFO, "")
	logging.SetBackend(leveled)
	leveledLogBackend = leveled
}

func main() {
	startLogging()

	var err error
	ourFlags = flag.NewFlagSet(progName, flag.ContinueOnError)
	ourFlags.Usage = func() {}
	ourFlags.SetOutput(&nullWriter{})

	// Usage strings are hardcoded above.

	var debugLogging bool
	ourFlags.BoolVar(&debugLogging, "debug", false, "")
	ourFlags.BoolVar(&debugLogging, "d", false, "")

	argErr := ourFlags.Parse(os.Args[1:])
	if argErr == flag.ErrHelp {
		io.WriteString(os.Stdout, usageMessage())
		os.Exit(0)
	} else if argErr != nil {
		usageErrorf("%s", argErr.Error())
	}

	if debugLogging {
		for _, module := range compressor.LogModules {
			leveledLogBackend.SetLevel(logging.DEBUG, module)
		}
		leveledLogBackend.SetLevel(logging.DEBUG, "HuffTool")
	}

	var requestedCommand func() error
	subcommandArg := nextArg("SUBCOMMAND")
	switch subcommandArg {
	default:
		usageErrorf("unrecognized subcommand \"%s\"", subcommandArg)
	case "compress":
		requestedCommand, err = compressFromArgs()
	case "decompress":
		requestedCommand, err = decompressFromArgs()
	case "roundtrip":
		requestedCommand, err = roundtripFromArgs()
	case "inspect":
		requestedCommand, err = inspectFromArgs()
	}

	if err != nil {
		exitError(err)
	}

	err = requestedCommand()
	if err != nil {
		exitError(err)
	}
}

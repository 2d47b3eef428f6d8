package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"

	"code.cloudfoundry.org/bytefmt"
	"github.com/davecgh/go-spew/spew"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/spacemeshos/bitcodec/bitstream"
	"github.com/spacemeshos/bitcodec/counter"
	"github.com/spacemeshos/bitcodec/schema"
)

var (
	cfg = defaultConfig()

	fieldSpec  string
	symbolBits int
	groupBits  int
)

var rootCmd = &cobra.Command{
	Use:          "bitcli",
	Short:        "Inspect binary data as a bit stream",
	SilenceUsage: true,
}

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the stream in bit groups with a summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDump(cmd)
	},
}

var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "Decode the stream against a field spec",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFields(cmd)
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Histogram fixed-width symbols consumed from the stream",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStats(cmd)
	},
}

func init() {
	setFlags(rootCmd, cfg)

	dumpCmd.Flags().IntVar(&groupBits, "group-bits", 8, "Bits per printed group")
	fieldsCmd.Flags().StringVar(&fieldSpec, "spec", "", "Field spec, e.g. \"version:u3,flags:u5,delta:i12r\"")
	statsCmd.Flags().IntVar(&symbolBits, "symbol-bits", 8, "Symbol width for the histogram, in bits")

	rootCmd.AddCommand(dumpCmd, fieldsCmd, statsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup merges the config, builds the logger and constructs the stream from
// the configured input.
func setup(cmd *cobra.Command) (*bitstream.BitStream, *zap.Logger, error) {
	merged, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	logger, err := newLogger(merged.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	if merged.Debug {
		spew.Dump(merged)
	}

	data, err := inputBytes(merged)
	if err != nil {
		return nil, nil, err
	}

	var endian bitstream.Endianness
	if err := endian.UnmarshalText([]byte(merged.Endianness)); err != nil {
		return nil, nil, err
	}

	s, err := bitstream.NewFromBytes(data, merged.ElementBits, endian)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("stream constructed",
		zap.Int("bits", s.Len()),
		zap.String("input", bytefmt.ByteSize(uint64(len(data)))),
		zap.Uint("elementBits", merged.ElementBits),
		zap.Stringer("endianness", endian),
	)

	return s, logger, nil
}

func newLogger(level string) (*zap.Logger, error) {
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid `loglevel`: %v", err)
	}

	zapCfg := zap.Config{
		Level:    zap.NewAtomicLevelAt(parsed),
		Encoding: "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "T",
			LevelKey:       "L",
			NameKey:        "N",
			MessageKey:     "M",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
		},
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return zapCfg.Build()
}

func inputBytes(cfg *Config) ([]byte, error) {
	switch {
	case cfg.InputHex != "" && cfg.InputFile != "":
		return nil, fmt.Errorf("-hex and -file are mutually exclusive")
	case cfg.InputHex != "":
		cleaned := strings.TrimPrefix(strings.ReplaceAll(cfg.InputHex, " ", ""), "0x")
		data, err := hex.DecodeString(cleaned)
		if err != nil {
			return nil, fmt.Errorf("invalid hex input: %w", err)
		}
		return data, nil
	case cfg.InputFile != "":
		data, err := os.ReadFile(cfg.InputFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read input file: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("missing input; use -hex or -file")
	}
}

func runDump(cmd *cobra.Command) error {
	s, _, err := setup(cmd)
	if err != nil {
		return err
	}

	if groupBits < 1 {
		return fmt.Errorf("invalid `group-bits`; expected: >= 1, given: %d", groupBits)
	}

	const groupsPerLine = 8
	var line []string
	for s.Remaining() > 0 {
		size := groupBits
		if r := s.Remaining(); r < size {
			size = r
		}

		group, err := s.PeekString(size)
		if err != nil {
			return err
		}
		if err := s.Skip(size); err != nil {
			return err
		}

		line = append(line, group)
		if len(line) == groupsPerLine {
			fmt.Println(strings.Join(line, " "))
			line = line[:0]
		}
	}
	if len(line) > 0 {
		fmt.Println(strings.Join(line, " "))
	}

	return nil
}

func runFields(cmd *cobra.Command) error {
	s, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	fields, err := schema.Parse(fieldSpec)
	if err != nil {
		return err
	}

	values, err := schema.Decode(s, fields)
	if err != nil {
		return err
	}

	if r := s.Remaining(); r > 0 {
		logger.Warn("spec does not cover the whole stream", zap.Int("remainingBits", r))
	}

	data := make([][]string, 0, len(values))
	for _, v := range values {
		data = append(data, []string{
			v.Field.Name,
			v.Field.Kind.String(),
			strconv.Itoa(v.Field.Size),
			v.String(),
		})
	}
	report([]string{"field", "kind", "bits", "value"}, data)

	return nil
}

func runStats(cmd *cobra.Command) error {
	s, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	if symbolBits < 1 || symbolBits > 64 {
		return fmt.Errorf("invalid `symbol-bits`; expected: 1 to 64, given: %d", symbolBits)
	}

	counts := counter.New[uint64]()
	for s.Remaining() >= symbolBits {
		symbol, err := bitstream.Consume[uint64](s, symbolBits)
		if err != nil {
			return err
		}
		counts.Add(symbol)
	}

	if r := s.Remaining(); r > 0 {
		logger.Warn("trailing bits do not form a whole symbol", zap.Int("remainingBits", r))
	}

	data := make([][]string, 0, counts.Len())
	for _, entry := range counts.Sorted() {
		data = append(data, []string{
			fmt.Sprintf("%0*b", symbolBits, entry.Key),
			strconv.FormatUint(entry.Key, 10),
			strconv.FormatUint(entry.Count, 10),
		})
	}
	report([]string{"symbol", "value", "count"}, data)

	logger.Info("histogram complete", zap.Int("distinctSymbols", counts.Len()))

	return nil
}

func report(header []string, data [][]string) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(header)
	table.SetBorder(true)
	table.AppendBulk(data)
	table.Render()
}

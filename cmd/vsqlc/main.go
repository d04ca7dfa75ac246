package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/vsqlc/vsqlc/internal/cache"
	"github.com/vsqlc/vsqlc/internal/compiler"
)

const helpText = `vsqlc interactive REPL

Type a WHERE clause and press enter to compile it to a filter, e.g.:
  color IN ('red','black') OR age >= 17
  city = 'London' AND color != 'red'
  id IN (1,2,3)

Commands:
  help          Show this help message
  exit / quit   Exit the REPL

Any other input is compiled as a WHERE clause.
`

func main() {
	_ = godotenv.Load()

	cacheSize := flag.Int("cache-size", envInt("VSQLC_CACHE_SIZE", 256), "number of compiled filters to cache")
	logLevel := flag.String("log-level", envString("VSQLC_LOG_LEVEL", "info"), "zerolog level (debug, info, warn, error)")
	flag.Parse()

	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	c, err := cache.New(*cacheSize, log)
	if err != nil {
		log.Fatal().Err(err).Msg("vsqlc: failed to build cache")
	}

	if clause := strings.Join(flag.Args(), " "); clause != "" {
		os.Exit(runOne(c, log, clause))
		return
	}

	runREPL(c, log)
}

func runOne(c *cache.Cache, log zerolog.Logger, clause string) int {
	f, err := c.Compile(clause)
	if err != nil {
		reportError(log, clause, err)
		return 1
	}
	printFilter(f)
	return 0
}

func runREPL(c *cache.Cache, log zerolog.Logger) {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("vsqlc — WHERE-clause filter compiler")
	fmt.Println(`Type "help" for available commands.`)
	fmt.Println()

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch strings.ToLower(line) {
		case "exit", "quit":
			return
		case "help":
			fmt.Print(helpText)
			continue
		}

		f, err := c.Compile(line)
		if err != nil {
			reportError(log, line, err)
			continue
		}
		log.Info().Int("must", len(f.Must)).Int("should", len(f.Should)).Int("must_not", len(f.MustNot)).Msg("vsqlc: compiled")
		printFilter(f)
	}
}

func printFilter(f *compiler.Filter) {
	b, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error encoding filter: %v\n", err)
		return
	}
	fmt.Println(string(b))
}

func reportError(log zerolog.Logger, clause string, err error) {
	switch e := err.(type) {
	case *compiler.ParseError:
		log.Warn().Str("clause", clause).Int("offset", e.Offset).Int("line", e.Line).Int("column", e.Column).Msg(e.Message)
	case *compiler.InvalidQueryError:
		log.Warn().Str("clause", clause).Str("kind", e.Kind).Msg(e.Message)
	default:
		log.Warn().Str("clause", clause).Err(err).Msg("vsqlc: compile failed")
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
}

func envInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	var n int
	if _, err := fmt.Sscanf(v, "%d", &n); err != nil {
		return fallback
	}
	return n
}

func envString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

package main

import (
	"bufio"
	"flag"
	"io"
	"log"
	"os"
	"runtime"
	"slices"
	"strings"

	"github.com/limaJavier/ottypology/pkg/typology"
)

var validModes = []string{typology.CountMode, typology.FullMode}

func main() {
	// Define arguments
	configPtr := flag.String("config", "", "Path to a JSON config file; flags explicitly set on the command line override its values")
	segmentsPtr := flag.String("segments", "CCCVV", "Segments (C's and V's) every stem is built from, where \"CCCVV\" is the default")
	rootLengthPtr := flag.Int("root", 3, "Number of segments in the root, the rest belong to the residue, where 3 is the default")
	familyPtr := flag.String("family", "default", "Ranking family. Allowed values are: "+strings.Join(typology.Families(), ", ")+", where \"default\" is the default")
	constraintsPtr := flag.String("constraints", "", "Comma separated constraints whose every ordering is evaluated; overrides -family")
	modePtr := flag.String("mode", typology.CountMode, `Output mode. Allowed values are:
- "count" (typology counts per ranking and summary statistics) and
- "full" (winner and typology of every input under every ranking), where "count" is the default`)
	verbosePtr := flag.Bool("verbose", false, "Print every tableau in full mode")
	workersPtr := flag.Int("workers", runtime.NumCPU(), "Number of rankings evaluated concurrently")
	outFilePathPtr := flag.String("out", "", "Path to the file where the output will be written; if empty, it'll be written into the Standard Output")
	flag.Parse()

	config := typology.DefaultConfig()
	if *configPtr != "" {
		fileConfig, err := typology.ConfigFromJson(*configPtr)
		if err != nil {
			log.Fatalf("cannot parse config file: %v", err)
		}
		config = fileConfig
	}

	// Flags set explicitly take precedence over the config file
	explicit := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
	if *configPtr == "" || explicit["segments"] {
		config.Segments = strings.ToUpper(*segmentsPtr)
	}
	if *configPtr == "" || explicit["root"] {
		config.RootLength = *rootLengthPtr
	}
	if *configPtr == "" || explicit["family"] {
		config.Family = strings.ToLower(*familyPtr)
	}
	if explicit["constraints"] {
		config.Constraints = strings.Split(*constraintsPtr, ",")
	}
	if *configPtr == "" || explicit["mode"] {
		config.Mode = strings.ToLower(*modePtr)
	}
	if *configPtr == "" || explicit["verbose"] {
		config.Verbose = *verbosePtr
	}
	if *configPtr == "" || explicit["workers"] {
		config.Workers = *workersPtr
	}

	// Validate arguments
	if !slices.Contains(validModes, config.Mode) {
		log.Fatalf("%v is not a valid mode", config.Mode)
	} else if config.Workers <= 0 {
		log.Fatalf("workers must be greater than 0: %v", config.Workers)
	} else if err := config.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	// Initialize engines
	generator, err := config.Generator()
	if err != nil {
		log.Fatalf("cannot build generator: %v", err)
	}
	rankings, err := config.Rankings()
	if err != nil {
		log.Fatalf("cannot build rankings: %v", err)
	}
	driver := typology.NewDriver(generator, config.Workers)

	// Verify outfile is empty, if so then write the results to the Standard Output
	var out io.Writer = os.Stdout
	if *outFilePathPtr != "" {
		file, err := os.Create(*outFilePathPtr)
		if err != nil {
			log.Fatalf("cannot create output file: %v", err)
		}
		defer file.Close()
		out = file
	}
	writer := bufio.NewWriter(out)
	defer writer.Flush()

	switch config.Mode {
	case typology.FullMode:
		err = driver.Full(rankings, func(result typology.RankingResult) error {
			return typology.WriteFull(writer, result, config.Verbose)
		})
	case typology.CountMode:
		var summary typology.Summary
		summary, err = driver.Count(rankings)
		if err == nil {
			err = typology.WriteCounts(writer, summary)
		}
	}
	if err != nil {
		writer.Flush()
		log.Fatalf("an error occurred during typology evaluation: %v", err)
	}
}

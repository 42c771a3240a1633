package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"regexp"

	"github.com/pkg/errors"
	kingpin "gopkg.in/alecthomas/kingpin.v2"
	"www.velocidex.com/golang/recyclebin/accessors"
	"www.velocidex.com/golang/recyclebin/config"
	"www.velocidex.com/golang/recyclebin/index"
	"www.velocidex.com/golang/recyclebin/logging"
	"www.velocidex.com/golang/recyclebin/parsers/recyclebin"
	"www.velocidex.com/golang/recyclebin/reporting"
	"www.velocidex.com/golang/recyclebin/scanner"
)

var (
	parse_command = app.Command(
		"parse", "Report on the recycle bin at the path (default).").Default()

	parse_path = parse_command.Arg(
		"path", "The $Recycle.Bin directory.").Required().String()
)

func install_sig_handler() (context.Context, context.CancelFunc) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		select {
		case <-quit:
			cancel()

		case <-ctx.Done():
			return
		}
	}()

	return ctx, cancel
}

// Scan the root, parse every index file and write the report. The
// index is returned for the stats.
func runParse(ctx context.Context, config_obj *config.Config,
	accessor accessors.FileSystemAccessor,
	root string, out io.Writer) (*index.Index, error) {

	logger := logging.GetLogger(config_obj, &logging.ToolComponent)

	// Fail on a bad format or encoding before doing any work.
	writer, err := reporting.NewWriter(
		config_obj.Format, config_obj.OutputEncoding, out)
	if err != nil {
		return nil, err
	}

	sid_regex, err := regexp.Compile(config_obj.SidRegex)
	if err != nil {
		return nil, errors.Wrap(err, "sid_regex")
	}

	scan, err := scanner.Scan(ctx, accessor, root,
		scanner.Options{SidRegex: sid_regex})
	if err != nil {
		return nil, err
	}

	logger.Info("Found %v user directories with %v index files in %v",
		len(scan.Users), scan.TotalCandidates(), root)

	parser := recyclebin.NewParser(accessor)
	idx, err := index.Build(ctx, scan, parser.ParseFile,
		index.Options{Workers: int(config_obj.Workers)})
	if err != nil {
		return idx, err
	}

	return idx, reporting.WriteIndex(writer, idx)
}

func doParse() (err error) {
	config_obj := load_config_or_die()

	ctx, cancel := install_sig_handler()
	defer cancel()

	accessor, err := accessors.GetAccessor(config_obj.Accessor, config_obj)
	if err != nil {
		return err
	}

	closer, ok := accessor.(io.Closer)
	if ok {
		defer closer.Close()
	}

	// An existing report must survive a mistyped root.
	err = scanner.CheckRoot(accessor, *parse_path)
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if config_obj.Output != "" {
		fd, err := os.Create(config_obj.Output)
		if err != nil {
			return errors.Wrap(err, "Unable to open the output file")
		}
		defer func() {
			close_err := fd.Close()
			if err == nil {
				err = close_err
			}
		}()
		out = fd
	}

	idx, err := runParse(ctx, config_obj, accessor, *parse_path, out)
	if err != nil {
		return err
	}

	if *stats_flag {
		return writeStats(os.Stderr, idx)
	}
	return nil
}

func init() {
	command_handlers = append(command_handlers, func(command string) bool {
		if command == parse_command.FullCommand() {
			err := doParse()
			kingpin.FatalIfError(err, "parse")
			return true
		}
		return false
	})
}

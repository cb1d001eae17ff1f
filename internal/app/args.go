package app

import (
	"fmt"
	"strings"
)

const usage = `usage: hexview [-raw] [--debug] [filename]

Shows filename (or the hexview executable itself) as paginated hex and
character rows. Type h and ENTER inside the viewer for the command list.

  -raw, --raw    print every row once and exit
  --debug        log at debug level
  -h, --help     show this help
  --version      print the version
`

type options struct {
	raw     bool
	debug   bool
	help    bool
	version bool
	path    string
}

func parseArgs(args []string) (options, error) {
	var opts options
	endOfFlags := false
	for _, arg := range args {
		if !endOfFlags && strings.HasPrefix(arg, "-") && arg != "-" {
			switch arg {
			case "--":
				endOfFlags = true
			case "-raw", "--raw":
				opts.raw = true
			case "-debug", "--debug":
				opts.debug = true
			case "-h", "-help", "--help":
				opts.help = true
			case "-version", "--version":
				opts.version = true
			default:
				return opts, fmt.Errorf("unknown flag %s", arg)
			}
			continue
		}
		if opts.path != "" {
			return opts, fmt.Errorf("unexpected argument %s", arg)
		}
		opts.path = arg
	}
	return opts, nil
}

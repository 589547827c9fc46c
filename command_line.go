package tpcc

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	g "github.com/hhkbp2/tpcc/generator"
)

var (
	Commands = map[string]bool{
		"load":  true,
		"run":   true,
		"shell": true,
		"check": true,
	}
	OptionPrefixes = []string{"--", "-"}
	OptionList     = []*Option{
		&Option{
			Name:        "P",
			HasArgument: true,
			Doc:         "specify workload file",
		},
		&Option{
			Name:        "p",
			HasArgument: true,
			Doc:         "specify a property value",
		},
		&Option{
			Name:        "s",
			HasArgument: false,
			Doc:         "Print status to stderr",
		},
		&Option{
			Name:        "db",
			HasArgument: true,
			Doc:         "use a specified DB binding(can also set the \"db\" property)",
		},
		&Option{
			Name:        "threads",
			HasArgument: true,
			Doc:         "number of client goroutines(can also set the \"threadcount\" property)",
		},
		&Option{
			Name:        "target",
			HasArgument: true,
			Doc:         "target transactions per second(can also set the \"target\" property)",
		},
		&Option{
			Name:        "h",
			HasArgument: false,
			Doc:         "show this help message and exit",
		},
		&Option{
			Name:        "help",
			HasArgument: false,
			Doc:         "show this help message and exit",
		},
	}
	Options = make(map[string]*Option)

	ProgramName           = ""
	OutputDest  io.Writer = os.Stdout
)

type Option struct {
	Name        string
	HasArgument bool
	Doc         string
}

type Arguments struct {
	Command  string
	Database string
	Options  map[string]string
	Properties
}

func Usage() {
	usageFormat := `usage: %s command database [options]

Commands:
  load               Execute the load phase
  run                Execute the transaction phase
  shell              Interactive mode
  check              Run the consistency checks

Databases:
  %s

Options:
  -P filename      : specify workload file(key=value lines, or .yaml)
  -p name=value    : specify a property value
  -s               : Print status to stderr
  -db binding      : use a specified DB binding(can also set the "db" property)
  -threads n       : number of client goroutines
  -target n        : target transactions per second

optional arguments:
  -h, --help         show this help message and exit`
	Println(usageFormat, ProgramName, strings.Join(DatabaseNames(), "\n  "))
}

func init() {
	ProgramName = filepath.Base(os.Args[0])

	// init options
	for i := 0; i < len(OptionList); i++ {
		o := OptionList[i]
		Options[o.Name] = o
	}
}

func ExitOnError(format string, args ...interface{}) {
	EPrintln(format, args...)
	os.Exit(1)
}

var (
	errHelp = g.NewErrorf("help requested")
)

// ParseArgs parses the arguments following the program name.
func ParseArgs(args []string) (*Arguments, error) {
	if len(args) == 0 {
		return nil, g.NewErrorf("no enough argument")
	}
	index := 0
	command := args[index]
	if command == "-h" || command == "--help" {
		return nil, errHelp
	}
	if _, ok := Commands[command]; !ok {
		return nil, g.NewErrorf("unsupported command: %s", command)
	}
	index++

	if len(args) < 2 {
		return nil, g.NewErrorf("no enough argument")
	}
	database := args[index]
	if _, ok := Databases[database]; !ok {
		return nil, g.NewErrorf("unsupported database: %s", database)
	}
	index++

	opts := make(map[string]string)
	props := NewProperties()
	props.Add(PropertyDB, database)
	for i := index; i < len(args); i++ {
		a := args[i]
		for _, p := range OptionPrefixes {
			if strings.HasPrefix(a, p) {
				a = strings.TrimPrefix(a, p)
				break
			}
		}
		option, ok := Options[a]
		if !ok {
			return nil, g.NewErrorf("unknown option: %s", args[i])
		}
		if !option.HasArgument {
			switch option.Name {
			case "h", "help":
				return nil, errHelp
			case "s":
				OutputDest = os.Stderr
			}
			opts[option.Name] = "true"
			continue
		}
		i++
		if !(i < len(args)) {
			return nil, g.NewErrorf("missing argument for option: %s", option.Name)
		}
		arg := args[i]
		switch option.Name {
		case "db":
			if _, ok := Databases[arg]; !ok {
				return nil, g.NewErrorf("unsupported database: %s", arg)
			}
			database = arg
			props.Add(PropertyDB, arg)
		case "threads":
			props.Add(PropertyThreadCount, arg)
		case "target":
			props.Add(PropertyTarget, arg)
		case "p":
			// it's a property, should be in `k=v` form
			index := strings.Index(arg, "=")
			if index <= 0 {
				return nil, g.NewErrorf("invalid property: %s", arg)
			}
			props.Add(arg[:index], arg[index+1:])
		case "P":
			propsFromFile, err := LoadProperties(arg)
			if err != nil {
				return nil, err
			}
			props.Merge(propsFromFile)
		}
		opts[option.Name] = arg
	}
	return &Arguments{
		Command:    command,
		Database:   props.GetDefault(PropertyDB, database),
		Options:    opts,
		Properties: props,
	}, nil
}

func Main() {
	args, err := ParseArgs(os.Args[1:])
	if err == errHelp {
		Usage()
		os.Exit(0)
	}
	if err != nil {
		ExitOnError("%s", err)
	}
	if err := ConfigureLogging(args.Properties); err != nil {
		ExitOnError("%s", err)
	}
	defer SyncLog()
	if GetLogLevel() >= LevelDebug {
		OutputProperties(args.Properties)
	}

	var client Client
	switch args.Command {
	case "shell":
		client = NewShell(args)
	case "load":
		client = NewLoader(args)
	case "run":
		client = NewRunner(args)
	case "check":
		client = NewChecker(args)
	default:
		ExitOnError("invalid command: %s", args.Command)
	}
	if err := client.Run(context.Background()); err != nil {
		SyncLog()
		ExitOnError("%s failed: %s", args.Command, err)
	}
}

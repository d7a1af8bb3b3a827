package render

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
)

// DefaultLowMemoryMB is the available-memory floor below which the
// accelerated path is considered unstable.
const DefaultLowMemoryMB = 512

// Terminals known to drop styled output or mangle redraws.
var fragileTerms = []string{"dumb", "linux", "vt100", "vt102", "cons25"}

// Environment is the probed description of the display a session runs on.
type Environment struct {
	Term      string
	Mobile    bool
	Fragile   bool
	MemoryMB  int // available memory, 0 when unknown
	LowMemory bool
	Profile   termenv.Profile
}

// Stable reports whether the accelerated path is expected to survive.
func (e Environment) Stable() bool {
	return e.Reason() == ""
}

// Reason names the first check that marks the environment unstable.
func (e Environment) Reason() string {
	switch {
	case e.Mobile:
		return "mobile terminal"
	case e.Fragile:
		return "fragile terminal " + strconv.Quote(e.Term)
	case e.LowMemory:
		return "low memory (" + strconv.Itoa(e.MemoryMB) + " MB)"
	case e.Profile == termenv.Ascii:
		return "no colour support"
	}
	return ""
}

// ProbeOptions controls where Probe looks.
type ProbeOptions struct {
	// Getenv reads the display's environment. Defaults to os.Getenv; SSH
	// hosts pass the remote session's environment.
	Getenv func(string) string
	// MeminfoPath is read for MemAvailable. Defaults to /proc/meminfo.
	MeminfoPath string
	LowMemoryMB int
	Profile     termenv.Profile
}

// Probe inspects the environment heuristically. It never fails; checks
// that cannot run count as passed.
func Probe(opts ProbeOptions) Environment {
	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	path := opts.MeminfoPath
	if path == "" {
		path = "/proc/meminfo"
	}
	floor := opts.LowMemoryMB
	if floor <= 0 {
		floor = DefaultLowMemoryMB
	}

	env := Environment{
		Term:    getenv("TERM"),
		Profile: opts.Profile,
	}
	env.Mobile = getenv("TERMUX_VERSION") != "" ||
		getenv("ANDROID_ROOT") != "" ||
		getenv("ANDROID_DATA") != ""
	for _, t := range fragileTerms {
		if env.Term == t {
			env.Fragile = true
			break
		}
	}
	if mb, ok := availableMemoryMB(path); ok {
		env.MemoryMB = mb
		env.LowMemory = mb < floor
	}
	return env
}

// EnvLookup adapts a KEY=VALUE list, such as an SSH session's environment,
// to a Getenv func.
func EnvLookup(environ []string) func(string) string {
	vars := make(map[string]string, len(environ))
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			vars[k] = v
		}
	}
	return func(key string) string {
		return vars[key]
	}
}

func availableMemoryMB(path string) (int, bool) {
	f, err := os.Open(path)
	if err != nil {
		return 0, false
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 || fields[0] != "MemAvailable:" {
			continue
		}
		kb, err := strconv.Atoi(fields[1])
		if err != nil {
			return 0, false
		}
		return kb / 1024, true
	}
	return 0, false
}

package tpcc

import (
	"bufio"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

type Properties map[string]string

func NewProperties() Properties {
	return make(Properties)
}

func (self Properties) Get(key string) string {
	v, _ := self[key]
	return v
}

func (self Properties) GetDefault(key string, defaultValue string) string {
	if v, ok := self[key]; ok {
		return v
	}
	return defaultValue
}

func (self Properties) Add(key, value string) {
	self[key] = value
}

// Merge copies every entry of other into self, overwriting existing keys.
func (self Properties) Merge(other map[string]string) {
	for k, v := range other {
		self[k] = v
	}
}

// Clone returns a copy that can be handed to another routine.
func (self Properties) Clone() Properties {
	ret := make(Properties, len(self))
	ret.Merge(self)
	return ret
}

func (self Properties) GetInt64(key, defaultValue string) (int64, error) {
	propStr := self.GetDefault(key, defaultValue)
	v, err := strconv.ParseInt(strings.TrimSpace(propStr), 0, 64)
	if err != nil {
		return 0, NewConfigError(key, propStr, "not an integer")
	}
	return v, nil
}

func (self Properties) GetFloat64(key, defaultValue string) (float64, error) {
	propStr := self.GetDefault(key, defaultValue)
	v, err := strconv.ParseFloat(strings.TrimSpace(propStr), 64)
	if err != nil {
		return 0, NewConfigError(key, propStr, "not a number")
	}
	return v, nil
}

func (self Properties) GetBool(key, defaultValue string) (bool, error) {
	propStr := self.GetDefault(key, defaultValue)
	v, err := strconv.ParseBool(strings.TrimSpace(propStr))
	if err != nil {
		return false, NewConfigError(key, propStr, "not a boolean")
	}
	return v, nil
}

// LoadProperties reads a property file. Files ending in .yaml or .yml are
// decoded as a flat YAML mapping, anything else as `key=value` lines where
// blank lines and lines starting with '#' are ignored.
func LoadProperties(fileName string) (Properties, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".yaml", ".yml":
		return loadYAMLProperties(fileName)
	default:
		return loadKVProperties(fileName)
	}
}

func loadKVProperties(fileName string) (Properties, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrapf(err, "fail to open property file %s", fileName)
	}
	defer f.Close()
	props := NewProperties()
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 || strings.HasPrefix(line, "#") {
			continue
		}
		index := strings.Index(line, "=")
		if index <= 0 {
			return nil, errors.Errorf("%s:%d: invalid property line %q", fileName, lineNo, line)
		}
		props.Add(strings.TrimSpace(line[:index]), strings.TrimSpace(line[index+1:]))
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "fail to read property file %s", fileName)
	}
	return props, nil
}

func loadYAMLProperties(fileName string) (Properties, error) {
	content, err := ioutil.ReadFile(fileName)
	if err != nil {
		return nil, errors.Wrapf(err, "fail to open property file %s", fileName)
	}
	m := make(map[string]interface{})
	if err := yaml.Unmarshal(content, &m); err != nil {
		return nil, errors.Wrapf(err, "fail to parse property file %s", fileName)
	}
	props := NewProperties()
	for k, v := range m {
		switch x := v.(type) {
		case nil:
			props.Add(k, "")
		case []interface{}:
			parts := make([]string, 0, len(x))
			for _, p := range x {
				parts = append(parts, fmt.Sprintf("%v", p))
			}
			props.Add(k, strings.Join(parts, ","))
		default:
			props.Add(k, fmt.Sprintf("%v", x))
		}
	}
	return props, nil
}

func Output(format string, args ...interface{}) {
	fmt.Fprintf(OutputDest, format, args...)
	fmt.Fprintln(OutputDest, "")
}

func OutputProperties(p Properties) {
	Output("***************** properties *****************")
	if p != nil {
		keys := make([]string, 0, len(p))
		for k := range p {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			Output("\"%s\"=\"%s\"", k, p[k])
		}
	}
	Output("**********************************************")
}

func SecondToNanosecond(s int64) int64 {
	return s * 1000 * 1000 * 1000
}

func MillisecondToNanosecond(ms int64) int64 {
	return ms * 1000 * 1000
}

func MillisecondToSecond(ms int64) int64 {
	return ms / 1000
}

func NanosecondToMicrosecond(ns int64) int64 {
	return ns / 1000
}

func NanosecondToMillisecond(ns int64) int64 {
	return ns / 1000 / 1000
}

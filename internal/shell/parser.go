package shell

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/vinicius-lino-figueiredo/unitdb/domain"
)

var (
	// ErrEmptyCommand is returned by [Parse] for blank lines.
	ErrEmptyCommand = errors.New("empty command")
	// ErrNotCommand is returned by [Parse] for lines not starting with a
	// dot.
	ErrNotCommand = errors.New("commands must start with '.'")
)

// ErrArgs is returned when a command gets the wrong number of arguments.
type ErrArgs struct {
	Command string
	Min     int
	Max     int
	Actual  int
}

// Error implements [error].
func (e ErrArgs) Error() string {
	if e.Min == e.Max {
		return fmt.Sprintf("%s expects %d argument(s), got %d", e.Command, e.Min, e.Actual)
	}
	return fmt.Sprintf("%s expects %d to %d arguments, got %d", e.Command, e.Min, e.Max, e.Actual)
}

// ErrSort is returned by [ParseSort] for malformed sort orders.
type ErrSort struct {
	Value string
}

// Error implements [error].
func (e ErrSort) Error() string {
	return fmt.Sprintf("invalid sort %q, expected field[:1|:-1]", e.Value)
}

// Command is a parsed shell line.
type Command struct {
	// Name is the first word of the line, dot included.
	Name string
	// Args is the rest of the line. Commands split it themselves because
	// JSON arguments may contain spaces.
	Args string
}

// Parse splits line into a [Command].
func Parse(line string) (Command, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Command{}, ErrEmptyCommand
	}
	if !strings.HasPrefix(line, ".") {
		return Command{}, ErrNotCommand
	}
	cmd := Command{Name: line}
	if i := strings.IndexFunc(line, unicode.IsSpace); i >= 0 {
		cmd.Name, cmd.Args = line[:i], strings.TrimSpace(line[i:])
	}
	return cmd, nil
}

// SplitJSON returns the consecutive JSON values in args.
func SplitJSON(args string) ([]json.RawMessage, error) {
	dec := json.NewDecoder(strings.NewReader(args))
	var values []json.RawMessage
	for {
		var v json.RawMessage
		if err := dec.Decode(&v); err != nil {
			if errors.Is(err, io.EOF) {
				return values, nil
			}
			return nil, fmt.Errorf("argument %d: %w", len(values)+1, err)
		}
		values = append(values, v)
	}
}

// ParseSort reads a comma separated list of fields, each optionally followed
// by :1 for ascending or :-1 for descending order. Fields default to
// ascending order.
func ParseSort(value string) (domain.Sort, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	var sort domain.Sort
	for part := range strings.SplitSeq(value, ",") {
		key, order, found := strings.Cut(strings.TrimSpace(part), ":")
		if key == "" {
			return nil, ErrSort{Value: value}
		}
		sn := domain.SortName{Key: key, Order: 1}
		if found {
			n, err := strconv.ParseInt(order, 10, 64)
			if err != nil || (n != 1 && n != -1) {
				return nil, ErrSort{Value: value}
			}
			sn.Order = n
		}
		sort = append(sort, sn)
	}
	return sort, nil
}

func isArray(raw json.RawMessage) bool {
	return bytes.HasPrefix(bytes.TrimSpace(raw), []byte("["))
}

package mt940

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	recordStart = "{1:"
	recordEnd   = "{5:"
)

// Field is one :TAG: field of block 4. Continuation lines are joined to
// Value with "\n".
type Field struct {
	Tag   string
	Value string
}

// SubField is one /CODE/value pair of a :86: field.
type SubField struct {
	Code  string
	Value string
}

var (
	fieldTag    = regexp.MustCompile(`^:(\d{2}[A-Z]?):(.*)$`)
	subFieldTag = regexp.MustCompile(`/([A-Z]{4})/`)
)

// SplitRecords frames text into records. The Nth "{1:" pairs with the Nth
// "{5:"; each record runs from its start marker up to (not including) its
// end marker.
func SplitRecords(text string) ([]string, error) {
	starts := indexAll(text, recordStart)
	ends := indexAll(text, recordEnd)
	if len(starts) != len(ends) {
		return nil, fmt.Errorf("%w: %d record starts, %d record ends", ErrRecordFraming, len(starts), len(ends))
	}

	records := make([]string, 0, len(starts))
	for i, start := range starts {
		end := ends[i]
		if end < start {
			return nil, fmt.Errorf("%w: record %d ends at offset %d before it starts at %d", ErrRecordFraming, i+1, end, start)
		}
		if i > 0 && start < ends[i-1] {
			return nil, fmt.Errorf("%w: record %d starts inside record %d", ErrRecordFraming, i+1, i)
		}
		records = append(records, text[start:end])
	}
	return records, nil
}

func indexAll(s, sub string) []int {
	var out []int
	for off := 0; ; {
		i := strings.Index(s[off:], sub)
		if i < 0 {
			return out
		}
		out = append(out, off+i)
		off += i + len(sub)
	}
}

// Blocks extracts the top-level {N:...} blocks (N = 1..5) of a record.
// The first occurrence of each block wins. A block without a closing brace
// runs to the end of the record.
func Blocks(record string) map[int]string {
	blocks := make(map[int]string)
	for i := 0; i+2 < len(record); i++ {
		if record[i] != '{' || record[i+2] != ':' || record[i+1] < '1' || record[i+1] > '5' {
			continue
		}
		n := int(record[i+1] - '0')
		end := closingBrace(record, i)
		if end < 0 {
			if _, ok := blocks[n]; !ok {
				blocks[n] = record[i+3:]
			}
			break
		}
		if _, ok := blocks[n]; !ok {
			blocks[n] = record[i+3 : end]
		}
		i = end
	}
	return blocks
}

func closingBrace(s string, open int) int {
	depth := 0
	for j := open; j < len(s); j++ {
		switch s[j] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return j
			}
		}
	}
	return -1
}

// Fields splits block 4 into tagged fields in input order.
func Fields(block4 string) []Field {
	var fields []Field
	for _, line := range strings.Split(block4, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line == "-" {
			continue
		}
		if m := fieldTag.FindStringSubmatch(line); m != nil {
			fields = append(fields, Field{Tag: m[1], Value: m[2]})
			continue
		}
		if len(fields) == 0 {
			continue
		}
		last := &fields[len(fields)-1]
		last.Value += "\n" + line
	}
	return fields
}

// SubFields splits :86: text on /CODE/ markers. Text before the first
// marker is dropped.
func SubFields(text string) []SubField {
	locs := subFieldTag.FindAllStringSubmatchIndex(text, -1)
	subs := make([]SubField, 0, len(locs))
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		subs = append(subs, SubField{
			Code:  text[loc[2]:loc[3]],
			Value: joinLines(text[loc[1]:end]),
		})
	}
	return subs
}

func joinLines(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", "")
	return strings.TrimSpace(s)
}

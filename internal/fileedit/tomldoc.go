package fileedit

import (
	"bytes"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// tomlPathSep joins table paths in the order index. Keys may contain
// dots, so a plain "." join would be ambiguous.
const tomlPathSep = "\x00"

var tomlBareKeyRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// MarshalTOMLOrdered serializes doc with every table and key in the
// order it appeared in the source document (taken from the decode
// metadata), appending keys the source did not have after the existing
// ones, sorted. BurntSushi's encoder sorts map keys, which would move
// unrelated lines of an existing config around on every write.
func MarshalTOMLOrdered(doc map[string]interface{}, md toml.MetaData) ([]byte, error) {
	order := make(map[string][]string)
	seen := make(map[string]bool)
	for _, key := range md.Keys() {
		parent := strings.Join(key[:len(key)-1], tomlPathSep)
		id := parent + tomlPathSep + key[len(key)-1]
		if !seen[id] {
			seen[id] = true
			order[parent] = append(order[parent], key[len(key)-1])
		}
	}

	var buf bytes.Buffer
	if err := writeTOMLTable(&buf, nil, doc, order); err != nil {
		return nil, err
	}
	return bytes.TrimLeft(buf.Bytes(), "\n"), nil
}

func writeTOMLTable(buf *bytes.Buffer, path []string, table map[string]interface{}, order map[string][]string) error {
	keys := orderedTableKeys(table, order[strings.Join(path, tomlPathSep)])

	// TOML syntax: inline assignments of a table must precede any
	// sub-table header.
	var inline, tables, arrayTables []string
	for _, k := range keys {
		switch table[k].(type) {
		case map[string]interface{}:
			tables = append(tables, k)
		case []map[string]interface{}:
			arrayTables = append(arrayTables, k)
		default:
			inline = append(inline, k)
		}
	}

	for _, k := range inline {
		if err := writeTOMLAssignment(buf, k, table[k]); err != nil {
			return err
		}
	}
	for _, k := range tables {
		fmt.Fprintf(buf, "\n[%s]\n", tomlHeaderKey(append(path, k)))
		if err := writeTOMLTable(buf, append(path, k), table[k].(map[string]interface{}), order); err != nil {
			return err
		}
	}
	for _, k := range arrayTables {
		for _, element := range table[k].([]map[string]interface{}) {
			fmt.Fprintf(buf, "\n[[%s]]\n", tomlHeaderKey(append(path, k)))
			if err := writeTOMLTable(buf, append(path, k), element, order); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeTOMLAssignment emits one "key = value" line, delegating value
// formatting and key quoting to the regular encoder.
func writeTOMLAssignment(buf *bytes.Buffer, key string, value interface{}) error {
	enc := toml.NewEncoder(buf)
	enc.Indent = ""
	return enc.Encode(map[string]interface{}{key: value})
}

func tomlHeaderKey(path []string) string {
	parts := make([]string, len(path))
	for i, p := range path {
		if tomlBareKeyRe.MatchString(p) {
			parts[i] = p
		} else {
			parts[i] = strconv.Quote(p)
		}
	}
	return strings.Join(parts, ".")
}

// orderedTableKeys lists table's keys with the known source order
// first, then any new keys sorted.
func orderedTableKeys(table map[string]interface{}, known []string) []string {
	keys := make([]string, 0, len(table))
	used := make(map[string]bool, len(table))
	for _, k := range known {
		if _, ok := table[k]; ok && !used[k] {
			used[k] = true
			keys = append(keys, k)
		}
	}
	var added []string
	for k := range table {
		if !used[k] {
			added = append(added, k)
		}
	}
	sort.Strings(added)
	return append(keys, added...)
}

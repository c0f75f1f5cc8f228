package overlap

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ReadFile reads every overlap record from the filtered overlap file
// at path, stopping at the first line beginning with "-" (the
// terminator the filter writes). Grounded on yield_from_overlap_file.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("overlap: opening %q: %w", path, err)
	}
	defer f.Close()

	var records []Record
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 1<<20)
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, "-") {
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		r, err := ParseLine(line)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("overlap: reading %q: %w", path, err)
	}
	return records, nil
}

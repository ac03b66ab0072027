package subset

import (
	"fmt"
	"os"
	"strings"
)

// InsertHeader places lines as a comment block after any leading "#!" line,
// followed by one blank line. The rest of content is kept byte for byte.
// An empty lines slice returns content unchanged.
func InsertHeader(content string, lines []string, marker string) string {
	if len(lines) == 0 {
		return content
	}

	var block strings.Builder
	for _, line := range lines {
		block.WriteString(marker)
		if line != "" {
			block.WriteByte(' ')
			block.WriteString(line)
		}
		block.WriteByte('\n')
	}
	block.WriteByte('\n')

	if strings.HasPrefix(content, "#!") {
		end := strings.IndexByte(content, '\n')
		if end < 0 {
			return content + "\n" + block.String()
		}
		return content[:end+1] + block.String() + content[end+1:]
	}
	return block.String() + content
}

// SpliceFile rewrites the subset artifact at path in place with the header.
func SpliceFile(path string, lines []string, marker string) error {
	if len(lines) == 0 {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat subset file: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read subset file: %w", err)
	}
	updated := InsertHeader(string(data), lines, marker)
	if err := os.WriteFile(path, []byte(updated), info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write subset file: %w", err)
	}
	return nil
}

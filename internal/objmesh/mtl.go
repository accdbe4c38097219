package objmesh

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ReadMTL returns the diffuse texture map (map_Kd) of every material in a
// material library. Materials without one map to "".
func ReadMTL(r io.Reader) (map[string]string, error) {
	maps := map[string]string{}
	cur := ""
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		switch fields[0] {
		case "newmtl":
			cur = fields[1]
			maps[cur] = ""
		case "map_Kd":
			if cur != "" {
				// options precede the file name
				maps[cur] = fields[len(fields)-1]
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("objmesh: mtl: %w", err)
	}
	return maps, nil
}

package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// LoadLegacyCuboids reads the column text cuboid format:
//
//	# comment lines
//	<number of cuboids>
//	cx cy cz  vx vy vz  nx ny nz  h  m  meanV
func LoadLegacyCuboids(path string) ([]CuboidConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cuboids, err := ReadLegacyCuboids(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cuboids, nil
}

func ReadLegacyCuboids(r io.Reader) ([]CuboidConfig, error) {
	scanner := bufio.NewScanner(r)
	count := -1
	var cuboids []CuboidConfig
	line := 0

	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		if count < 0 {
			n, err := strconv.Atoi(strings.Fields(text)[0])
			if err != nil || n < 0 {
				return nil, fmt.Errorf("%w: line %d: bad cuboid count %q", ErrInvalidConfig, line, text)
			}
			count = n
			cuboids = make([]CuboidConfig, 0, n)
			continue
		}

		if len(cuboids) == count {
			break
		}
		cu, err := parseLegacyCuboid(text)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidConfig, line, err)
		}
		cuboids = append(cuboids, cu)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if count < 0 {
		return nil, fmt.Errorf("%w: missing cuboid count", ErrInvalidConfig)
	}
	if len(cuboids) != count {
		return nil, fmt.Errorf("%w: expected %d cuboids, got %d", ErrInvalidConfig, count, len(cuboids))
	}
	return cuboids, nil
}

func parseLegacyCuboid(text string) (CuboidConfig, error) {
	var cu CuboidConfig
	fields := strings.Fields(text)
	if len(fields) < 12 {
		return cu, fmt.Errorf("expected 12 columns, got %d", len(fields))
	}

	floats := make([]float64, 12)
	for i, f := range fields[:12] {
		if i >= 6 && i < 9 {
			n, err := strconv.Atoi(f)
			if err != nil {
				return cu, fmt.Errorf("column %d: %w", i+1, err)
			}
			floats[i] = float64(n)
			continue
		}
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return cu, fmt.Errorf("column %d: %w", i+1, err)
		}
		floats[i] = v
	}

	copy(cu.Position[:], floats[0:3])
	copy(cu.Velocity[:], floats[3:6])
	for i := range cu.Dimensions {
		cu.Dimensions[i] = int(floats[6+i])
	}
	cu.MeshWidth = floats[9]
	cu.Mass = floats[10]
	cu.MeanVelocity = floats[11]
	return cu, nil
}

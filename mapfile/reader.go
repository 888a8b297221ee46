// Package mapfile reads the plain-text .map format:
//
//	patch-of <name> <x0> <y0> <x1> <y1> ... <xn> <yn>
//	capital-of <name> <x> <y>
//	neighbors-of <name> : <T1> - <T2> - ... - <Tn>
//	continent <name> <bonus> : <T1> - <T2> - ... - <Tn>
//
// Every capital-of line declares a territory. Neighbour lists may be one-way;
// the reader mirrors them.
package mapfile

import (
	"bufio"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strconv"
	"strings"

	"conquest/game"

	"github.com/rs/zerolog/log"
)

//go:embed data/*.map
var mapFiles embed.FS

// DefaultMap is the embedded map used when no path is configured.
const DefaultMap = "grid.map"

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrSyntax         = errors.New("syntax error")
)

type line struct {
	number int
	args   string
}

// Load reads a map from disk.
func Load(filename string) (*game.Map, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open map file: %w", err)
	}
	defer f.Close()

	m, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read map %s: %w", filename, err)
	}
	return m, nil
}

// Embedded reads one of the maps compiled into the binary.
func Embedded(filename string) (*game.Map, error) {
	f, err := mapFiles.Open(path.Join("data", filename))
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded map: %w", err)
	}
	defer f.Close()

	m, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read map %s: %w", filename, err)
	}
	return m, nil
}

// Default reads the embedded default map.
func Default() (*game.Map, error) {
	return Embedded(DefaultMap)
}

// List returns the names of the embedded maps.
func List() ([]string, error) {
	entries, err := mapFiles.ReadDir("data")
	if err != nil {
		return nil, fmt.Errorf("failed to read map directory: %w", err)
	}
	names := []string{}
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// Read parses a map. Capitals are read first so that the other commands may
// appear in any order.
func Read(r io.Reader) (*game.Map, error) {
	var patches, capitals, neighbors, continents []line

	scanner := bufio.NewScanner(r)
	number := 0
	for scanner.Scan() {
		number++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		command, args, _ := strings.Cut(text, " ")
		l := line{number: number, args: strings.TrimSpace(args)}
		switch command {
		case "patch-of":
			patches = append(patches, l)
		case "capital-of":
			capitals = append(capitals, l)
		case "neighbors-of":
			neighbors = append(neighbors, l)
		case "continent":
			continents = append(continents, l)
		default:
			return nil, fmt.Errorf("line %d: %w %q", number, ErrUnknownCommand, command)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan map: %w", err)
	}

	m := game.NewMap()
	for _, l := range capitals {
		name, coords, err := splitNameCoords(l.args)
		if err != nil || len(coords) != 2 {
			return nil, fmt.Errorf("line %d: %w: capital-of needs a name and x y", l.number, ErrSyntax)
		}
		if _, err := m.AddTerritory(name, game.Point{X: coords[0], Y: coords[1]}); err != nil {
			return nil, fmt.Errorf("line %d: %w", l.number, err)
		}
	}

	for _, l := range patches {
		name, coords, err := splitNameCoords(l.args)
		if err != nil || len(coords) < 6 || len(coords)%2 != 0 {
			return nil, fmt.Errorf("line %d: %w: patch-of needs a name and at least three x y pairs", l.number, ErrSyntax)
		}
		t, err := lookup(m, name, l.number)
		if err != nil {
			return nil, err
		}
		patch := make(game.Polygon, 0, len(coords)/2)
		for i := 0; i < len(coords); i += 2 {
			patch = append(patch, game.Point{X: coords[i], Y: coords[i+1]})
		}
		m.AddPatch(t, patch)
	}

	for _, l := range neighbors {
		name, list, ok := strings.Cut(l.args, " : ")
		if !ok {
			return nil, fmt.Errorf("line %d: %w: neighbors-of needs ' : '", l.number, ErrSyntax)
		}
		from, err := lookup(m, strings.TrimSpace(name), l.number)
		if err != nil {
			return nil, err
		}
		for _, n := range splitList(list) {
			to, err := lookup(m, n, l.number)
			if err != nil {
				return nil, err
			}
			if err := m.AddNeighbor(from, to); err != nil {
				return nil, fmt.Errorf("line %d: %w", l.number, err)
			}
		}
	}
	if added := m.RepairAdjacency(); added > 0 {
		log.Debug().Msgf("mirrored %d one-way borders", added)
	}

	for _, l := range continents {
		head, list, ok := strings.Cut(l.args, " : ")
		if !ok {
			return nil, fmt.Errorf("line %d: %w: continent needs ' : '", l.number, ErrSyntax)
		}
		fields := strings.Fields(head)
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: %w: continent needs a name and a bonus", l.number, ErrSyntax)
		}
		bonus, err := strconv.Atoi(fields[len(fields)-1])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w: bonus %q is not a number", l.number, ErrSyntax, fields[len(fields)-1])
		}
		members := []game.TerritoryID{}
		for _, n := range splitList(list) {
			t, err := lookup(m, n, l.number)
			if err != nil {
				return nil, err
			}
			members = append(members, t)
		}
		name := strings.Join(fields[:len(fields)-1], " ")
		if err := m.AddRegion(name, bonus, members...); err != nil {
			return nil, fmt.Errorf("line %d: %w", l.number, err)
		}
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// splitNameCoords separates the words of a name from the numbers after it.
func splitNameCoords(args string) (string, []float64, error) {
	var words []string
	var coords []float64
	for _, field := range strings.Fields(args) {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			if len(coords) > 0 {
				return "", nil, fmt.Errorf("%w: word %q after coordinates", ErrSyntax, field)
			}
			words = append(words, field)
			continue
		}
		coords = append(coords, v)
	}
	if len(words) == 0 {
		return "", nil, fmt.Errorf("%w: missing name", ErrSyntax)
	}
	return strings.Join(words, " "), coords, nil
}

func splitList(list string) []string {
	names := []string{}
	for _, n := range strings.Split(list, " - ") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}

func lookup(m *game.Map, name string, number int) (game.TerritoryID, error) {
	t, ok := m.Lookup(name)
	if !ok {
		return game.NoTerritory, fmt.Errorf("line %d: %w %q", number, game.ErrUnknownTerritory, name)
	}
	return t, nil
}

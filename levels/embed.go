package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-gl/mathgl/mgl64"
)

//go:embed *.json
var LevelsFS embed.FS

// DefaultLevel is the arena the demo and the simulator load when no level is
// named.
const DefaultLevel = "arena.json"

const (
	KindGround = "ground"
	KindWall   = "wall"
)

// Level is an axis-aligned blockout. Y is up; the playable area is centred on
// the origin and Size is its extent along X and Z.
type Level struct {
	Name     string     `json:"name"`
	Size     [2]float64 `json:"size"`
	Floor    float64    `json:"floor"`
	Spawn    mgl64.Vec3 `json:"spawn"`
	SpawnYaw float64    `json:"spawn_yaw"`
	Blocks   []Block    `json:"blocks,omitempty"`
	Ramps    []Ramp     `json:"ramps,omitempty"`
}

// Block is a solid box. Kind decides which query layer it answers to.
type Block struct {
	Min  mgl64.Vec3 `json:"min"`
	Max  mgl64.Vec3 `json:"max"`
	Kind string     `json:"kind"`
}

// Ramp is a walkable slope rising from Min.Y at its low edge to Max.Y at its
// high edge along Axis ("x" or "z").
type Ramp struct {
	Min  mgl64.Vec3 `json:"min"`
	Max  mgl64.Vec3 `json:"max"`
	Axis string     `json:"axis"`
}

func (l *Level) Validate() error {
	if l.Size[0] <= 0 || l.Size[1] <= 0 {
		return fmt.Errorf("invalid level size: %gx%g", l.Size[0], l.Size[1])
	}
	for i, b := range l.Blocks {
		if !below(b.Min, b.Max) {
			return fmt.Errorf("block %d: min %v not below max %v", i, b.Min, b.Max)
		}
		if b.Kind != KindGround && b.Kind != KindWall {
			return fmt.Errorf("block %d: unknown kind %q", i, b.Kind)
		}
	}
	for i, r := range l.Ramps {
		if !below(r.Min, r.Max) {
			return fmt.Errorf("ramp %d: min %v not below max %v", i, r.Min, r.Max)
		}
		if r.Axis != "x" && r.Axis != "z" {
			return fmt.Errorf("ramp %d: unknown axis %q", i, r.Axis)
		}
	}
	hx, hz := l.Size[0]/2, l.Size[1]/2
	if l.Spawn.X() < -hx || l.Spawn.X() > hx || l.Spawn.Z() < -hz || l.Spawn.Z() > hz {
		return fmt.Errorf("spawn %v outside level bounds", l.Spawn)
	}
	return nil
}

func below(a, b mgl64.Vec3) bool {
	return a.X() < b.X() && a.Y() < b.Y() && a.Z() < b.Z()
}

// LoadLevelFromFS loads an embedded level by file name.
func LoadLevelFromFS(name string) (*Level, error) {
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return parse(data)
}

// LoadLevel loads a level from disk.
func LoadLevel(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return parse(data)
}

// Load resolves name against the embedded levels, falling back to a path on
// disk.
func Load(name string) (*Level, error) {
	if name == "" {
		name = DefaultLevel
	}
	if _, err := fs.Stat(LevelsFS, name); err == nil {
		return LoadLevelFromFS(name)
	}
	return LoadLevel(name)
}

func parse(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

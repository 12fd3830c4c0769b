package loaders

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/log"
)

var logger = log.New("loaders")

// maxPrealloc caps capacity reserved from header counts; slices grow past it
// only as data is actually read
const maxPrealloc = 1 << 16

// ErrInvalidPLY is wrapped by every error caused by malformed PLY input
var ErrInvalidPLY = errors.New("loaders: invalid PLY data")

// Mesh is an indexed triangle mesh. Faces wind counter-clockwise when seen
// from outside the surface.
type Mesh struct {
	Vertices []core.Vec3
	Faces    [][3]int
}

// Bounds returns the box enclosing every vertex
func (m *Mesh) Bounds() core.AABB {
	if len(m.Vertices) == 0 {
		return core.AABB{}
	}
	return core.NewAABBFromPoints(m.Vertices...)
}

// plyProperty is a property definition from the PLY header
type plyProperty struct {
	name      string
	dataType  string
	isList    bool
	countType string // For list properties, the type of the count
}

type plyElement struct {
	name  string
	count int
	props []plyProperty
}

type plyHeader struct {
	format   string // "ascii", "binary_little_endian" or "binary_big_endian"
	elements []plyElement
}

// LoadPLY reads the vertex positions and faces of a PLY file
func LoadPLY(filename string) (*Mesh, error) {
	startTime := time.Now()

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY file: %w", err)
	}
	defer file.Close()

	mesh, err := ReadPLY(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	logger.Infof("loaded %s: %d vertices, %d triangles in %v",
		filename, len(mesh.Vertices), len(mesh.Faces), time.Since(startTime))
	return mesh, nil
}

// ReadPLY decodes a PLY stream in any of the three standard encodings.
// Polygons are fan-triangulated; elements other than vertex and face are
// skipped.
func ReadPLY(r io.Reader) (*Mesh, error) {
	br := bufio.NewReader(r)

	header, err := parsePLYHeader(br)
	if err != nil {
		return nil, err
	}

	var values valueReader
	switch header.format {
	case "ascii":
		scanner := bufio.NewScanner(br)
		scanner.Split(bufio.ScanWords)
		values = &asciiReader{scanner: scanner}
	case "binary_little_endian":
		values = &binaryReader{r: br, order: binary.LittleEndian}
	case "binary_big_endian":
		values = &binaryReader{r: br, order: binary.BigEndian}
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", ErrInvalidPLY, header.format)
	}

	mesh := &Mesh{}
	for _, element := range header.elements {
		if err := readElement(values, element, mesh); err != nil {
			return nil, fmt.Errorf("%w: element %s: %v", ErrInvalidPLY, element.name, err)
		}
	}

	if len(mesh.Faces) == 0 {
		return nil, fmt.Errorf("%w: no faces", ErrInvalidPLY)
	}
	for i, face := range mesh.Faces {
		for _, index := range face {
			if index < 0 || index >= len(mesh.Vertices) {
				return nil, fmt.Errorf("%w: triangle %d references vertex %d of %d",
					ErrInvalidPLY, i, index, len(mesh.Vertices))
			}
		}
	}
	return mesh, nil
}

// parsePLYHeader reads header lines up to and including end_header
func parsePLYHeader(br *bufio.Reader) (*plyHeader, error) {
	header := &plyHeader{}

	magic, err := br.ReadString('\n')
	if err != nil || strings.TrimSpace(magic) != "ply" {
		return nil, fmt.Errorf("%w: missing ply magic", ErrInvalidPLY)
	}

	for {
		line, err := br.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("%w: header ends before end_header", ErrInvalidPLY)
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "end_header":
			return header, nil
		case "comment", "obj_info":
		case "format":
			if len(parts) < 3 {
				return nil, fmt.Errorf("%w: invalid format line %q", ErrInvalidPLY, strings.TrimSpace(line))
			}
			header.format = parts[1]
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("%w: invalid element line %q", ErrInvalidPLY, strings.TrimSpace(line))
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("%w: invalid element count %q", ErrInvalidPLY, parts[2])
			}
			header.elements = append(header.elements, plyElement{name: parts[1], count: count})
		case "property":
			if len(header.elements) == 0 {
				return nil, fmt.Errorf("%w: property before any element", ErrInvalidPLY)
			}
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, err
			}
			current := &header.elements[len(header.elements)-1]
			current.props = append(current.props, prop)
		default:
			return nil, fmt.Errorf("%w: unknown header keyword %q", ErrInvalidPLY, parts[0])
		}
	}
}

// parsePLYProperty parses a property line from the PLY header
func parsePLYProperty(parts []string) (plyProperty, error) {
	if len(parts) >= 4 && parts[0] == "list" {
		prop := plyProperty{isList: true, countType: parts[1], dataType: parts[2], name: parts[3]}
		if typeSize(prop.countType) == 0 || typeSize(prop.dataType) == 0 {
			return prop, fmt.Errorf("%w: unknown list type in %v", ErrInvalidPLY, parts)
		}
		return prop, nil
	}
	if len(parts) != 2 || typeSize(parts[0]) == 0 {
		return plyProperty{}, fmt.Errorf("%w: invalid property definition %v", ErrInvalidPLY, parts)
	}
	return plyProperty{dataType: parts[0], name: parts[1]}, nil
}

func readElement(values valueReader, element plyElement, mesh *Mesh) error {
	switch element.name {
	case "vertex":
		return readVertices(values, element, mesh)
	case "face":
		return readFaces(values, element, mesh)
	}
	if len(element.props) == 0 {
		return nil
	}
	for i := 0; i < element.count; i++ {
		for _, prop := range element.props {
			if _, err := readProperty(values, prop); err != nil {
				return err
			}
		}
	}
	return nil
}

func readVertices(values valueReader, element plyElement, mesh *Mesh) error {
	axes := [3]int{-1, -1, -1}
	for i, prop := range element.props {
		switch prop.name {
		case "x":
			axes[0] = i
		case "y":
			axes[1] = i
		case "z":
			axes[2] = i
		}
	}
	for _, index := range axes {
		if index < 0 || element.props[index].isList {
			return errors.New("vertex element needs scalar x, y and z")
		}
	}

	mesh.Vertices = make([]core.Vec3, 0, min(element.count, maxPrealloc))
	row := make([]float64, len(element.props))
	for i := 0; i < element.count; i++ {
		for p, prop := range element.props {
			list, err := readProperty(values, prop)
			if err != nil {
				return err
			}
			if !prop.isList {
				row[p] = list[0]
			}
		}
		mesh.Vertices = append(mesh.Vertices, core.NewVec3(row[axes[0]], row[axes[1]], row[axes[2]]))
	}
	return nil
}

func readFaces(values valueReader, element plyElement, mesh *Mesh) error {
	indices := -1
	for i, prop := range element.props {
		if prop.isList && (prop.name == "vertex_indices" || prop.name == "vertex_index") {
			indices = i
		}
	}
	if indices < 0 {
		return errors.New("face element needs a vertex_indices list")
	}

	mesh.Faces = make([][3]int, 0, min(element.count, maxPrealloc))
	for i := 0; i < element.count; i++ {
		for p, prop := range element.props {
			list, err := readProperty(values, prop)
			if err != nil {
				return err
			}
			if p != indices {
				continue
			}
			if len(list) < 3 {
				return fmt.Errorf("face %d has %d vertices", i, len(list))
			}
			// Fan triangulation around the first vertex
			for k := 1; k+1 < len(list); k++ {
				mesh.Faces = append(mesh.Faces, [3]int{int(list[0]), int(list[k]), int(list[k+1])})
			}
		}
	}
	return nil
}

// readProperty returns the single value of a scalar property or the items
// of a list property
func readProperty(values valueReader, prop plyProperty) ([]float64, error) {
	if !prop.isList {
		v, err := values.read(prop.dataType)
		if err != nil {
			return nil, err
		}
		return []float64{v}, nil
	}

	n, err := values.read(prop.countType)
	if err != nil {
		return nil, err
	}
	if n < 0 || n != math.Trunc(n) {
		return nil, fmt.Errorf("invalid list length %v", n)
	}
	count := int(n)
	list := make([]float64, 0, min(count, maxPrealloc))
	for i := 0; i < count; i++ {
		v, err := values.read(prop.dataType)
		if err != nil {
			return nil, err
		}
		list = append(list, v)
	}
	return list, nil
}

// typeSize returns the encoded size of a PLY scalar type, or 0 if unknown
func typeSize(dataType string) int {
	switch dataType {
	case "char", "uchar", "int8", "uint8":
		return 1
	case "short", "ushort", "int16", "uint16":
		return 2
	case "int", "uint", "float", "int32", "uint32", "float32":
		return 4
	case "double", "float64":
		return 8
	default:
		return 0
	}
}

type valueReader interface {
	read(dataType string) (float64, error)
}

type asciiReader struct {
	scanner *bufio.Scanner
}

func (a *asciiReader) read(dataType string) (float64, error) {
	if !a.scanner.Scan() {
		if err := a.scanner.Err(); err != nil {
			return 0, err
		}
		return 0, io.ErrUnexpectedEOF
	}
	return strconv.ParseFloat(a.scanner.Text(), 64)
}

type binaryReader struct {
	r     *bufio.Reader
	order binary.ByteOrder
	buf   [8]byte
}

func (b *binaryReader) read(dataType string) (float64, error) {
	data := b.buf[:typeSize(dataType)]
	if _, err := io.ReadFull(b.r, data); err != nil {
		return 0, err
	}

	switch dataType {
	case "char", "int8":
		return float64(int8(data[0])), nil
	case "uchar", "uint8":
		return float64(data[0]), nil
	case "short", "int16":
		return float64(int16(b.order.Uint16(data))), nil
	case "ushort", "uint16":
		return float64(b.order.Uint16(data)), nil
	case "int", "int32":
		return float64(int32(b.order.Uint32(data))), nil
	case "uint", "uint32":
		return float64(b.order.Uint32(data)), nil
	case "float", "float32":
		return float64(math.Float32frombits(b.order.Uint32(data))), nil
	default:
		return math.Float64frombits(b.order.Uint64(data)), nil
	}
}

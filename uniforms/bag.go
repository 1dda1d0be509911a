package uniforms

import (
	"slices"
	"strconv"

	"golang.org/x/exp/maps"
)

// Exporter is implemented by anything that can turn itself into named shader
// inputs. name is either the full uniform name (for single values) or a prefix
// that struct-like types extend with ".field".
type Exporter interface {
	ExportUniforms(name string, bag *Bag)
}

// Bag collects the uniforms of a single draw call. It is built fresh for every
// draw, consumed once, then dropped.
type Bag struct {
	values map[string]Value
}

func NewBag() *Bag {
	return &Bag{
		values: make(map[string]Value),
	}
}

// Add inserts or overwrites name. Later writes win, so defaults can be layered
// under overrides.
func (b *Bag) Add(name string, v Value) {
	b.values[name] = v
}

// Export is shorthand for e.ExportUniforms(name, b), returning b for chaining.
func (b *Bag) Export(name string, e Exporter) *Bag {
	e.ExportUniforms(name, b)
	return b
}

func (b *Bag) Get(name string) (Value, bool) {
	v, ok := b.values[name]
	return v, ok
}

func (b *Bag) Len() int {
	return len(b.values)
}

// Each calls fn once for every uniform. Iteration order is unspecified.
func (b *Bag) Each(fn func(name string, v Value)) {
	for name, v := range b.values {
		fn(name, v)
	}
}

// Names returns the sorted uniform names. Meant for logs and tests, never for
// upload order.
func (b *Bag) Names() []string {
	names := maps.Keys(b.values)
	slices.Sort(names)
	return names
}

// Join builds the dotted path used for struct members, e.g. Join("material", "diffuse").
func Join(prefix, field string) string {

	if prefix == "" {
		return field
	}

	return prefix + "." + field
}

// Index builds an array element name, e.g. Index("pointLights", 2) == "pointLights[2]".
func Index(array string, i int) string {
	return array + "[" + strconv.Itoa(i) + "]"
}

// ExportArray exports every item under arrayName[i]. The shader side array must
// be declared with the same length as items.
func ExportArray[E Exporter](bag *Bag, arrayName string, items []E) {
	for i := 0; i < len(items); i++ {
		items[i].ExportUniforms(Index(arrayName, i), bag)
	}
}

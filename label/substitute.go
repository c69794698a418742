package label

import (
	"sort"

	"github.com/printable/stencil/binding"
)

// Substitute resolves placeholders in every text-bearing property (text
// content, barcode data, image source) against vars and returns a new
// element slice. The input is never mutated, so two protocols can be
// emitted from the same document concurrently.
func Substitute(elements []Element, vars binding.Map) []Element {
	out := make([]Element, len(elements))
	for i, el := range elements {
		switch p := el.Props.(type) {
		case TextProps:
			p.Text = binding.Resolve(p.Text, vars)
			el.Props = p
		case BarcodeProps:
			p.Data = binding.Resolve(p.Data, vars)
			el.Props = p
		case ImageProps:
			p.Src = binding.Resolve(p.Src, vars)
			el.Props = p
		}
		out[i] = el
	}
	return out
}

// CollectUsedVariableNames returns the sorted, de-duplicated names of every
// placeholder referenced by the elements' text-bearing properties.
func CollectUsedVariableNames(elements []Element) []string {
	seen := map[string]bool{}
	collect := func(text string) {
		for _, ref := range binding.ExtractReferences(text) {
			seen[ref.Name] = true
		}
	}
	for _, el := range elements {
		switch p := el.Props.(type) {
		case TextProps:
			collect(p.Text)
		case BarcodeProps:
			collect(p.Data)
		case ImageProps:
			collect(p.Src)
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

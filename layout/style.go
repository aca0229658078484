package layout

import "strings"

// Style is the closed set of visual overrides a section, row or column may
// carry. Every field is optional and independently applied; an unset field
// means "unset", never a default color or size. MinHeight, MaxHeight and
// VerticalAlign only apply to rows, TextAlign only to columns; the other
// fields apply everywhere. Raw is an escape hatch appended verbatim (after
// sanitizing) for power users.
type Style struct {
	BackgroundColor    string `json:"backgroundColor,omitempty"`
	BackgroundImage    string `json:"backgroundImage,omitempty"`
	BackgroundSize     string `json:"backgroundSize,omitempty"`
	BackgroundPosition string `json:"backgroundPosition,omitempty"`
	BackgroundRepeat   string `json:"backgroundRepeat,omitempty"`
	Padding            string `json:"padding,omitempty"`
	Margin             string `json:"margin,omitempty"`
	BorderColor        string `json:"borderColor,omitempty"`
	BorderWidth        string `json:"borderWidth,omitempty"`
	BorderStyle        string `json:"borderStyle,omitempty"`
	BorderRadius       string `json:"borderRadius,omitempty"`
	BoxShadow          string `json:"boxShadow,omitempty"`
	Opacity            string `json:"opacity,omitempty"`
	MinHeight          string `json:"minHeight,omitempty"`
	MaxHeight          string `json:"maxHeight,omitempty"`
	VerticalAlign      string `json:"verticalAlign,omitempty"`
	TextAlign          string `json:"textAlign,omitempty"`
	Raw                string `json:"raw,omitempty"`
}

// IsZero reports whether no field is set. Used by encoding/json omitzero.
func (s Style) IsZero() bool {
	return s == Style{}
}

// verticalAlignCSS maps the editor's vertical alignment values onto
// flexbox alignment; rows render as flex containers.
var verticalAlignCSS = map[string]string{
	"top":    "flex-start",
	"middle": "center",
	"bottom": "flex-end",
}

// CSS resolves the style into an inline declaration list. Resolution is
// pure: the receiver is a value and is never mutated, and the declaration
// order is fixed so equal styles always produce equal strings.
func (s Style) CSS() string {
	var d []string
	add := func(prop, val string) {
		if val != "" {
			d = append(d, prop+":"+cssValue(val))
		}
	}
	add("background-color", s.BackgroundColor)
	if s.BackgroundImage != "" {
		d = append(d, "background-image:url('"+cssURL(s.BackgroundImage)+"')")
	}
	add("background-size", s.BackgroundSize)
	add("background-position", s.BackgroundPosition)
	add("background-repeat", s.BackgroundRepeat)
	add("padding", s.Padding)
	add("margin", s.Margin)
	add("border-color", s.BorderColor)
	add("border-width", s.BorderWidth)
	add("border-style", s.BorderStyle)
	add("border-radius", s.BorderRadius)
	add("box-shadow", s.BoxShadow)
	add("opacity", s.Opacity)
	add("min-height", s.MinHeight)
	add("max-height", s.MaxHeight)
	if v, ok := verticalAlignCSS[strings.ToLower(s.VerticalAlign)]; ok {
		d = append(d, "align-items:"+v)
	}
	add("text-align", s.TextAlign)
	if raw := strings.Trim(sanitize(s.Raw, ""), "; "); raw != "" {
		d = append(d, raw)
	}
	return strings.Join(d, ";")
}

// cssValue sanitizes a single declaration value. Values come from the
// builder UI and end up inside a style attribute, so anything that could
// terminate the declaration list or the attribute is stripped.
func cssValue(v string) string {
	return sanitize(v, ";")
}

// cssURL sanitizes a url() argument; quotes would terminate the wrapper.
func cssURL(v string) string {
	return sanitize(v, ";'")
}

func sanitize(v, extra string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune("{}<>\"\n\r", r) || strings.ContainsRune(extra, r) {
			return -1
		}
		return r
	}, v)
}

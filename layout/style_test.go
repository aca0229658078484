package layout

import (
	"strings"
	"testing"
)

func TestStyleCSS(t *testing.T) {
	tests := []struct {
		name  string
		style Style
		want  string
	}{
		{"zero style", Style{}, ""},
		{"single field", Style{BackgroundColor: "#fff"}, "background-color:#fff"},
		{
			"multiple fields keep fixed order",
			Style{Padding: "1rem", BackgroundColor: "#000", Margin: "0 auto"},
			"background-color:#000;padding:1rem;margin:0 auto",
		},
		{
			"background image wrapped in url",
			Style{BackgroundImage: "/public/uploads/hero.jpg", BackgroundSize: "cover"},
			"background-image:url('/public/uploads/hero.jpg');background-size:cover",
		},
		{
			"border group",
			Style{BorderColor: "#ccc", BorderWidth: "1px", BorderStyle: "solid", BorderRadius: "4px"},
			"border-color:#ccc;border-width:1px;border-style:solid;border-radius:4px",
		},
		{
			"row alignment maps to flex",
			Style{MinHeight: "200px", VerticalAlign: "middle"},
			"min-height:200px;align-items:center",
		},
		{"column text align", Style{TextAlign: "center"}, "text-align:center"},
		{"opacity", Style{Opacity: "0.5"}, "opacity:0.5"},
		{
			"raw escape hatch appended last",
			Style{BackgroundColor: "#fff", Raw: "backdrop-filter:blur(4px);gap:8px"},
			"background-color:#fff;backdrop-filter:blur(4px);gap:8px",
		},
		{"unknown vertical align dropped", Style{VerticalAlign: "sideways"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.style.CSS(); got != tt.want {
				t.Errorf("CSS() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStyleCSSSanitizesValues(t *testing.T) {
	s := Style{BackgroundColor: `#fff;} </style><script>`}
	got := s.CSS()
	for _, bad := range []string{";}", "<", ">", `"`} {
		if strings.Contains(got, bad) {
			t.Errorf("CSS() = %q contains %q", got, bad)
		}
	}

	s = Style{BackgroundImage: "x');content:url('evil"}
	got = s.CSS()
	if strings.Contains(got, "');") {
		t.Errorf("url value not sanitized: %q", got)
	}
}

func TestStyleCSSIsPure(t *testing.T) {
	s := Style{BackgroundColor: "#abc", Raw: " color:red; "}
	first := s.CSS()
	second := s.CSS()
	if first != second {
		t.Errorf("CSS() not stable: %q vs %q", first, second)
	}
	if s.Raw != " color:red; " {
		t.Error("CSS() mutated the receiver")
	}
}

func TestStyleIsZero(t *testing.T) {
	if !(Style{}).IsZero() {
		t.Error("empty style should be zero")
	}
	if (Style{Padding: "1px"}).IsZero() {
		t.Error("styled value should not be zero")
	}
}

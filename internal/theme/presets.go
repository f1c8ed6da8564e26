package theme

// DefaultDark is the theme applied when a request names none.
func DefaultDark() Theme {
	return Theme{
		ID:   "default-dark",
		Name: "Default Dark",
		Type: TypeDark,
		Background: Background{
			Type:      BackgroundGradient,
			Primary:   "#1e1e2e",
			Secondary: "#181825",
			Opacity:   1.0,
		},
		Syntax: Syntax{
			Keyword:  "#c792ea",
			String:   "#c3e88d",
			Comment:  "#676e95",
			Number:   "#f78c6c",
			Operator: "#89ddff",
			Function: "#82aaff",
			Variable: "#eeffff",
			TypeName: "#ffcb6b",
		},
		Window:     defaultWindow(),
		Typography: defaultTypography(),
	}
}

// DefaultLight mirrors DefaultDark for light backgrounds.
func DefaultLight() Theme {
	return Theme{
		ID:   "default-light",
		Name: "Default Light",
		Type: TypeLight,
		Background: Background{
			Type:      BackgroundGradient,
			Primary:   "#fafafa",
			Secondary: "#eff1f5",
			Opacity:   1.0,
		},
		Syntax: Syntax{
			Keyword:  "#7c4dff",
			String:   "#91b859",
			Comment:  "#90a4ae",
			Number:   "#f76d47",
			Operator: "#39adb5",
			Function: "#6182b8",
			Variable: "#272727",
			TypeName: "#e2931d",
		},
		Window:     defaultWindow(),
		Typography: defaultTypography(),
	}
}

func defaultWindow() Window {
	return Window{
		Style:        WindowMacOS,
		ShowTitleBar: true,
		ShowControls: true,
		BorderRadius: 12,
		Shadow:       true,
	}
}

func defaultTypography() Typography {
	return Typography{
		FontFamily:      "JetBrains Mono",
		FontSize:        14,
		LineHeight:      1.5,
		LetterSpacing:   0,
		ShowLineNumbers: true,
	}
}

// Presets returns every built-in theme in catalog order.
func Presets() []Theme {
	return []Theme{
		DefaultDark(),
		DefaultLight(),
		monokai(),
		dracula(),
		githubLight(),
		solarizedDark(),
		nord(),
		oneDark(),
	}
}

func monokai() Theme {
	return Theme{
		ID:   "monokai",
		Name: "Monokai",
		Type: TypeDark,
		Background: Background{
			Type:    BackgroundSolid,
			Primary: "#272822",
			Opacity: 1.0,
		},
		Syntax: Syntax{
			Keyword:  "#f92672",
			String:   "#e6db74",
			Comment:  "#75715e",
			Number:   "#ae81ff",
			Operator: "#f8f8f2",
			Function: "#a6e22e",
			Variable: "#f8f8f2",
			TypeName: "#66d9ef",
		},
		Window:     defaultWindow(),
		Typography: defaultTypography(),
	}
}

func dracula() Theme {
	return Theme{
		ID:   "dracula",
		Name: "Dracula",
		Type: TypeDark,
		Background: Background{
			Type:      BackgroundGradient,
			Primary:   "#282a36",
			Secondary: "#1e2029",
			Opacity:   1.0,
		},
		Syntax: Syntax{
			Keyword:  "#ff79c6",
			String:   "#f1fa8c",
			Comment:  "#6272a4",
			Number:   "#bd93f9",
			Operator: "#f8f8f2",
			Function: "#50fa7b",
			Variable: "#f8f8f2",
			TypeName: "#8be9fd",
		},
		Window:     defaultWindow(),
		Typography: defaultTypography(),
	}
}

func githubLight() Theme {
	return Theme{
		ID:   "github-light",
		Name: "GitHub Light",
		Type: TypeLight,
		Background: Background{
			Type:    BackgroundSolid,
			Primary: "#ffffff",
			Opacity: 1.0,
		},
		Syntax: Syntax{
			Keyword:  "#cf222e",
			String:   "#0a3069",
			Comment:  "#6e7781",
			Number:   "#0550ae",
			Operator: "#24292f",
			Function: "#8250df",
			Variable: "#24292f",
			TypeName: "#953800",
		},
		Window: Window{
			Style:        WindowClean,
			ShowTitleBar: false,
			ShowControls: false,
			BorderRadius: 6,
			Shadow:       false,
		},
		Typography: defaultTypography(),
	}
}

func solarizedDark() Theme {
	return Theme{
		ID:   "solarized-dark",
		Name: "Solarized Dark",
		Type: TypeDark,
		Background: Background{
			Type:    BackgroundSolid,
			Primary: "#002b36",
			Opacity: 1.0,
		},
		Syntax: Syntax{
			Keyword:  "#859900",
			String:   "#2aa198",
			Comment:  "#586e75",
			Number:   "#d33682",
			Operator: "#839496",
			Function: "#268bd2",
			Variable: "#839496",
			TypeName: "#b58900",
		},
		Window: Window{
			Style:        WindowTerminal,
			ShowTitleBar: true,
			ShowControls: false,
			BorderRadius: 8,
			Shadow:       true,
		},
		Typography: defaultTypography(),
	}
}

func nord() Theme {
	return Theme{
		ID:   "nord",
		Name: "Nord",
		Type: TypeDark,
		Background: Background{
			Type:      BackgroundGradient,
			Primary:   "#2e3440",
			Secondary: "#3b4252",
			Opacity:   1.0,
		},
		Syntax: Syntax{
			Keyword:  "#81a1c1",
			String:   "#a3be8c",
			Comment:  "#616e88",
			Number:   "#b48ead",
			Operator: "#eceff4",
			Function: "#88c0d0",
			Variable: "#d8dee9",
			TypeName: "#8fbcbb",
		},
		Window:     defaultWindow(),
		Typography: defaultTypography(),
	}
}

func oneDark() Theme {
	return Theme{
		ID:   "one-dark",
		Name: "One Dark",
		Type: TypeDark,
		Background: Background{
			Type:    BackgroundSolid,
			Primary: "#282c34",
			Opacity: 1.0,
		},
		Syntax: Syntax{
			Keyword:  "#c678dd",
			String:   "#98c379",
			Comment:  "#5c6370",
			Number:   "#d19a66",
			Operator: "#abb2bf",
			Function: "#61afef",
			Variable: "#e06c75",
			TypeName: "#e5c07b",
		},
		Window:     defaultWindow(),
		Typography: defaultTypography(),
	}
}

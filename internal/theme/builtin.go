package theme

// Builtins returns the themes compiled into the binary. The first one is
// the fallback for unknown names.
func Builtins() []Theme {
	return []Theme{
		{
			Name:     "Cyber Glow",
			IsSystem: true,
			Styles: Styles{
				CategoryColors: {
					"--bg-1":         "#0d0221",
					"--bg-2":         "#24174d",
					"--accent":       "#00d5ff",
					"--ink":          "#f0f0f0",
					"--ink-dim":      "#a0a0a0",
					"--panel-10":     "rgba(36, 23, 77, 0.6)",
					"--panel-16":     "rgba(13, 2, 33, 0.6)",
					"--panel-24":     "rgba(36, 23, 77, 0.7)",
					"--panel-border": "rgba(255, 255, 255, 0.1)",
				},
				CategoryDimensions: {"--r-sm": "10px", "--r-md": "12px", "--border-thickness": "1px"},
				CategoryShadows: {
					"--shadow-1":     "0 8px 30px rgba(13, 2, 33, 0.4)",
					"--shadow-inset": "inset 0 0 0 1px rgba(255, 255, 255, 0.1)",
				},
			},
		},
		{
			Name:     "Soft Material",
			IsSystem: true,
			Styles: Styles{
				CategoryColors: {
					"--bg-1":         "#F4F6F8",
					"--bg-2":         "#FFFFFF",
					"--accent":       "#3498DB",
					"--ink":          "#2C3E50",
					"--ink-dim":      "#7F8C8D",
					"--panel-10":     "rgba(255, 255, 255, 0.5)",
					"--panel-16":     "rgba(244, 246, 248, 0.5)",
					"--panel-24":     "rgba(255, 255, 255, 0.6)",
					"--panel-border": "rgba(0, 0, 0, 0.1)",
				},
				CategoryDimensions: {"--r-sm": "8px", "--r-md": "16px", "--border-thickness": "1px"},
				CategoryShadows: {
					"--shadow-1":     "0 4px 12px rgba(220, 220, 220, 0.5)",
					"--shadow-inset": "inset 0 1px 2px rgba(0, 0, 0, 0.05)",
				},
			},
		},
	}
}

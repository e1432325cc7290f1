package component

import (
	"slices"

	"github.com/thoreinstein/themesnap/internal/host"
)

const gnomeInterface = "org.gnome.desktop.interface"

var (
	gtkSettings = "~/.config/gtk-3.0/settings.ini"
	iconDirs    = []string{"~/.icons", "~/.local/share/icons", "/usr/share/icons"}
)

func gtkKey(label, key string) Method {
	return Method{Kind: KindFileKey, Label: label, Path: gtkSettings, Format: FormatINI, Section: "Settings", Key: key}
}

func gsettings(label, key string, ignore ...string) Method {
	return Method{Kind: KindSetting, Label: label, Tool: host.ToolGSettings, Schema: gnomeInterface, Key: key, Ignore: ignore}
}

func kreadconfig(label, file, group, key string, ignore ...string) Method {
	return Method{Kind: KindSetting, Label: label, Tool: host.ToolKReadConfig, Schema: file, Group: group, Key: key, Ignore: ignore}
}

// Default returns a registry holding the built-in catalog.
func Default() *Registry {
	r := NewRegistry()
	for _, s := range builtins() {
		// Built-in specs are static and known valid.
		_ = r.Register(s)
	}
	return r
}

func builtins() []*Spec {
	return []*Spec{
		{
			ID:          "gtk-themes",
			DisplayName: "GTK Themes",
			Description: "GTK2/GTK3 theme files",
			Category:    CategoryTheming,
			Detectors: []Method{
				gtkKey("GTK3", "gtk-theme-name"),
				gsettings("GTK", "gtk-theme"),
			},
			Sources: StaticSources(
				"~/.themes",
				"~/.local/share/themes",
				"/usr/share/themes",
				"~/.config/gtk-3.0",
				"~/.config/gtk-4.0",
				"~/.gtkrc-2.0",
			),
			DestSubfolder: "GTK_Themes",
		},
		{
			ID:          "icons",
			DisplayName: "Icons",
			Description: "Icon themes",
			Category:    CategoryTheming,
			Detectors: []Method{
				gtkKey("Icons", "gtk-icon-theme-name"),
				gsettings("Icons", "icon-theme"),
			},
			Sources:       StaticSources(iconDirs...),
			DestSubfolder: "Icons",
		},
		{
			ID:          "cursors",
			DisplayName: "Cursors",
			Description: "Mouse cursor themes",
			Category:    CategoryTheming,
			Detectors: []Method{
				gtkKey("Cursor", "gtk-cursor-theme-name"),
				gsettings("Cursor", "cursor-theme"),
				{Kind: KindDirScan, Label: "Cursor", Dirs: iconDirs, Match: "*cursor*", DirsOnly: true},
			},
			Sources:       StaticSources(slices.Concat(iconDirs, []string{"~/.config/xsettingsd"})...),
			DestSubfolder: "Cursors",
		},
		{
			ID:          "qt-styles",
			DisplayName: "Qt/KDE Styles",
			Description: "Qt5/Qt6 styles",
			Category:    CategoryTheming,
			Detectors: []Method{
				{Kind: KindFileKey, Label: "Qt5", Path: "~/.config/qt5ct/qt5ct.conf", Format: FormatINI, Section: "Appearance", Key: "style"},
				{Kind: KindFileKey, Label: "Qt6", Path: "~/.config/qt6ct/qt6ct.conf", Format: FormatINI, Section: "Appearance", Key: "style"},
				{Kind: KindFileKey, Label: "Kvantum", Path: "~/.config/Kvantum/kvantum.kvconfig", Format: FormatINI, Section: "General", Key: "theme"},
			},
			Sources: StaticSources(
				"~/.config/qt5ct",
				"~/.config/qt6ct",
				"~/.config/Kvantum",
			),
			DestSubfolder: "Qt_KDE_Styles",
		},
		{
			ID:          "app-style",
			DisplayName: "Application Style",
			Description: "Current desktop application style (Oxygen, Edge Runner, etc.)",
			Category:    CategoryTheming,
			Detectors: []Method{
				kreadconfig("KDE Style", "kdeglobals", "KDE", "widgetStyle", "default"),
				kreadconfig("KDE Theme", "kdeglobals", "General", "ColorScheme"),
				gsettings("GTK Style", "gtk-theme", "Adwaita"),
				{Kind: KindPresence, Label: "Available", Probes: []Probe{
					{Name: "GTK3", Path: gtkSettings},
					{Name: "Qt5", Path: "~/.config/qt5ct/qt5ct.conf"},
					{Name: "Qt6", Path: "~/.config/qt6ct/qt6ct.conf"},
				}},
			},
			Sources: StaticSources(
				"~/.config/kdeglobals",
				"/etc/xdg/kdeglobals",
			),
			DestSubfolder: "Application_Style",
		},
		{
			ID:          "color-schemes",
			DisplayName: "Color Schemes",
			Description: "KDE color schemes",
			Category:    CategoryTheming,
			Detectors: []Method{
				{Kind: KindFileKey, Label: "KDE", Path: "~/.config/kdeglobals", Format: FormatINI, Section: "General", Key: "ColorScheme"},
				kreadconfig("Plasma", "kdeglobals", "General", "ColorScheme"),
				gsettings("GNOME", "color-scheme", "default"),
			},
			Sources: StaticSources(
				"~/.local/share/color-schemes",
				"/usr/share/color-schemes",
			),
			DestSubfolder: "Color_Schemes",
		},
		{
			ID:          "fonts",
			DisplayName: "Fonts",
			Description: "Font configuration and user fonts",
			Category:    CategoryTheming,
			Detectors: []Method{
				gsettings("Font", "font-name"),
				{Kind: KindPattern, Label: "Font", Path: "~/.config/fontconfig/fonts.conf", Pattern: `<family>\s*([^<]+?)\s*</family>`},
			},
			Sources: StaticSources(
				"~/.config/fontconfig",
				"~/.local/share/fonts",
				"~/.fonts",
			),
			DestSubfolder: "Fonts",
		},
		{
			ID:          "window-decorations",
			DisplayName: "Window Decorations",
			Description: "Window manager decorations and borders",
			Category:    CategoryWindowManager,
			Detectors: []Method{
				kreadconfig("KWin", "kwinrc", "org.kde.kdecoration2", "library", "org.kde.kwin.aurorae"),
				{Kind: KindFileKey, Label: "KWin Plugin", Path: "~/.config/kwinrc", Format: FormatINI, Section: "org.kde.kdecoration2", Key: "theme"},
				{Kind: KindPattern, Label: "AwesomeWM", Value: "Beautiful", Path: "~/.config/awesome/rc.lua", Pattern: `beautiful\.init`},
				{Kind: KindPattern, Label: "Openbox", Path: "~/.config/openbox/rc.xml", Pattern: `(?s)<theme>.*?<name>\s*([^<]+?)\s*</name>`},
			},
			Sources: StaticSources(
				"~/.config/kwinrc",
				"~/.local/share/aurorae",
				"~/.config/awesome",
				"~/.config/i3",
				"~/.config/openbox",
				"~/.config/bspwm",
				"/usr/share/kde4/config",
			),
			DestSubfolder: "Window_Decorations",
		},
		{
			ID:          "wm-themes",
			DisplayName: "Window Manager Themes",
			Description: "Window manager configuration",
			Category:    CategoryWindowManager,
			Detectors: []Method{
				{Kind: KindEnv, Label: "WM", Key: "XDG_CURRENT_DESKTOP"},
				{Kind: KindEnv, Label: "WM", Key: "I3SOCK", Value: "i3"},
				{Kind: KindEnv, Label: "WM", Key: "SWAYSOCK", Value: "sway"},
				{Kind: KindEnv, Label: "WM", Key: "HYPRLAND_INSTANCE_SIGNATURE", Value: "Hyprland"},
				{Kind: KindEnv, Label: "WM", Key: "BSPWM_SOCKET", Value: "bspwm"},
			},
			Sources: StaticSources(
				"~/.config/i3",
				"~/.config/sway",
				"~/.config/hypr",
				"~/.config/bspwm",
				"~/.config/awesome",
				"~/.config/openbox",
			),
			DestSubfolder: "Window_Manager_Themes",
		},
		{
			ID:          "splash",
			DisplayName: "Splash Screen",
			Description: "Boot splash screen and login animations",
			Category:    CategoryBootLogin,
			Detectors: []Method{
				{Kind: KindFileKey, Label: "Plymouth", Path: "/etc/plymouth/plymouthd.conf", Format: FormatINI, Section: "Daemon", Key: "Theme"},
				{Kind: KindDirScan, Label: "Plymouth", Dirs: []string{"/etc/alternatives"}, Match: "default.plymouth"},
				{Kind: KindFileKey, Label: "GRUB", Path: "/etc/default/grub", Format: FormatINI, Key: "GRUB_THEME"},
				{Kind: KindDirScan, Label: "Plymouth", Value: "Available", Dirs: []string{"/usr/share/plymouth/themes"}, DirsOnly: true},
			},
			Sources: StaticSources(
				"/usr/share/plymouth/themes",
				"/etc/plymouth/plymouthd.conf",
				"/etc/alternatives/default.plymouth",
				"/boot/grub/themes",
				"~/.config/plymouth",
			),
			DestSubfolder: "Splash_Screen",
		},
		{
			ID:          "sddm",
			DisplayName: "SDDM Theme",
			Description: "SDDM login manager theme",
			Category:    CategoryBootLogin,
			Detectors: []Method{
				{Kind: KindFileKey, Label: "SDDM", Path: "/etc/sddm.conf", Format: FormatINI, Section: "Theme", Key: "Current"},
				{Kind: KindFileKey, Label: "SDDM", Path: "/etc/sddm.conf.d/*.conf", Format: FormatINI, Section: "Theme", Key: "Current"},
			},
			Sources: StaticSources(
				"/usr/share/sddm/themes",
				"/etc/sddm.conf",
				"/etc/sddm.conf.d",
			),
			DestSubfolder: "SDDM_Theme",
		},
		{
			ID:          "terminal",
			DisplayName: "Terminal Themes",
			Description: "Terminal themes",
			Category:    CategoryTerminal,
			Detectors: []Method{
				{Kind: KindFileKey, Label: "Alacritty", Path: "~/.config/alacritty/alacritty.toml", Format: FormatTOML, Key: "general.import", Basename: true},
				{Kind: KindFileKey, Label: "Alacritty", Value: "Custom theme", Path: "~/.config/alacritty/alacritty.toml", Format: FormatTOML, Key: "colors"},
				{Kind: KindFileKey, Label: "Alacritty", Value: "Custom theme", Path: "~/.config/alacritty/alacritty.yml", Format: FormatYAML, Key: "colors"},
				{Kind: KindPattern, Label: "Kitty", Path: "~/.config/kitty/kitty.conf", Pattern: `(?m)^\s*include\s+(\S*theme\S*)`, Basename: true},
				{Kind: KindSetting, Label: "GNOME Terminal", Value: "Configured", Tool: host.ToolGSettings, Schema: "org.gnome.Terminal.ProfilesList", Key: "default"},
			},
			Sources: StaticSources(
				"~/.config/alacritty",
				"~/.config/kitty",
				"~/.local/share/konsole",
			),
			DestSubfolder: "Terminal_Themes",
		},
		{
			ID:          "shell",
			DisplayName: "Shell Themes",
			Description: "Shell prompt themes",
			Category:    CategoryShell,
			Detectors: []Method{
				{Kind: KindPattern, Label: "Zsh (Oh My Zsh)", Path: "~/.zshrc", Pattern: `(?m)^\s*ZSH_THEME=["']?([^"'\s]+)`},
				{Kind: KindEnv, Label: "Shell", Key: "SHELL", Pattern: `([^/]+)$`},
			},
			Sources: StaticSources(
				"~/.zshrc",
				"~/.oh-my-zsh/custom/themes",
				"~/.bashrc",
				"~/.config/fish",
				"~/.config/starship.toml",
			),
			DestSubfolder: "Shell_Themes",
		},
	}
}

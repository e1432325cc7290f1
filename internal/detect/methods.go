package detect

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/themesnap/internal/component"
	"github.com/thoreinstein/themesnap/internal/host"
	"github.com/thoreinstein/themesnap/pkg/fileutil"
)

var iniOptions = ini.LoadOptions{
	SkipUnrecognizableLines: true,
	AllowBooleanKeys:        true,
	IgnoreInlineComment:     true,
}

// files expands a path that may contain glob metacharacters. Matches come
// back in lexical order.
func files(h *host.Host, path string) []string {
	path = h.Expand(path)
	if !strings.ContainsAny(path, "*?[") {
		return []string{path}
	}
	matches, err := afero.Glob(h.FS, path)
	if err != nil {
		return nil
	}
	return matches
}

func readFile(h *host.Host, path string) ([]byte, bool) {
	data, err := fileutil.ReadFileWithLimit(h.FS, path)
	if err != nil {
		return nil, false
	}
	return data, true
}

func fileKey(h *host.Host, m component.Method) (string, bool) {
	for _, path := range files(h, m.Path) {
		data, ok := readFile(h, path)
		if !ok {
			continue
		}
		var (
			v     string
			found bool
		)
		switch m.Format {
		case component.FormatINI:
			v, found = iniValue(data, m.Section, m.Key)
		case component.FormatTOML:
			var doc map[string]any
			if toml.Unmarshal(data, &doc) == nil {
				v, found = lookup(doc, m.Key)
			}
		case component.FormatYAML:
			var doc map[string]any
			if yaml.Unmarshal(data, &doc) == nil {
				v, found = lookup(doc, m.Key)
			}
		}
		if found && (v != "" || m.Value != "") {
			return v, true
		}
	}
	return "", false
}

func iniValue(data []byte, section, key string) (string, bool) {
	f, err := ini.LoadSources(iniOptions, data)
	if err != nil {
		return "", false
	}
	if section == "" {
		section = ini.DefaultSection
	}
	sec, err := f.GetSection(section)
	if err != nil {
		return "", false
	}
	k, err := sec.GetKey(key)
	if err != nil {
		return "", false
	}
	return k.String(), true
}

// lookup walks a dotted key through nested maps. A table or list counts as
// found; its scalar value is the first scalar it contains, if any.
func lookup(doc map[string]any, key string) (string, bool) {
	var cur any = doc
	for part := range strings.SplitSeq(key, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return "", false
		}
		cur, ok = m[part]
		if !ok {
			return "", false
		}
	}
	return scalar(cur), cur != nil
}

func scalar(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		for _, e := range t {
			if s := scalar(e); s != "" {
				return s
			}
		}
		return ""
	case map[string]any, nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}

type candidate struct {
	name   string
	target string
	link   bool
}

// dirScan picks one entry from the first directory with any candidate.
// Symlinked candidates win over plain ones and report their target;
// ties go to the lexicographically last name.
func dirScan(h *host.Host, m component.Method) (string, bool) {
	match := strings.ToLower(m.Match)
	if match == "" {
		match = "*"
	}

	for _, dir := range m.Dirs {
		dir = h.Expand(dir)
		infos, err := afero.ReadDir(h.FS, dir)
		if err != nil {
			continue
		}

		var best, bestLink *candidate
		for _, info := range infos {
			name := info.Name()
			if strings.HasPrefix(name, ".") {
				continue
			}
			if ok, _ := filepath.Match(match, strings.ToLower(name)); !ok {
				continue
			}

			c := candidate{name: name}
			full := filepath.Join(dir, name)
			if info.Mode()&os.ModeSymlink != 0 {
				target, ok := readlink(h, full)
				if !ok {
					continue
				}
				c.link, c.target = true, target
			}
			if m.DirsOnly && !isDir(h, full) {
				continue
			}

			// ReadDir sorts by name, so the last seen is the greatest.
			if c.link {
				bestLink = &c
			} else {
				best = &c
			}
		}

		switch {
		case bestLink != nil:
			if isDir(h, bestLink.target) {
				return filepath.Base(bestLink.target), true
			}
			return basename(bestLink.target), true
		case best != nil:
			return best.name, true
		}
	}
	return "", false
}

func readlink(h *host.Host, path string) (string, bool) {
	lr, ok := h.FS.(afero.LinkReader)
	if !ok {
		return "", false
	}
	target, err := lr.ReadlinkIfPossible(path)
	if err != nil || target == "" {
		return "", false
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(path), target)
	}
	return target, true
}

func isDir(h *host.Host, path string) bool {
	info, err := h.FS.Stat(path)
	return err == nil && info.IsDir()
}

func env(h *host.Host, m component.Method) (string, bool) {
	v := strings.TrimSpace(h.Getenv(m.Key))
	if v == "" {
		return "", false
	}
	if m.Pattern == "" {
		return v, true
	}
	re, err := regexp.Compile(m.Pattern)
	if err != nil {
		return "", false
	}
	return submatch(re, []byte(v))
}

func pattern(h *host.Host, m component.Method) (string, bool) {
	re, err := regexp.Compile(m.Pattern)
	if err != nil {
		return "", false
	}
	for _, path := range files(h, m.Path) {
		data, ok := readFile(h, path)
		if !ok {
			continue
		}
		if v, ok := submatch(re, data); ok && (v != "" || m.Value != "") {
			return v, true
		}
	}
	return "", false
}

// submatch returns the first non-empty capture group, or the whole match
// when the expression has no groups.
func submatch(re *regexp.Regexp, data []byte) (string, bool) {
	groups := re.FindSubmatch(data)
	if groups == nil {
		return "", false
	}
	if len(groups) == 1 {
		return string(bytes.TrimSpace(groups[0])), true
	}
	for _, g := range groups[1:] {
		if len(g) > 0 {
			return string(bytes.TrimSpace(g)), true
		}
	}
	return "", true
}

func presence(h *host.Host, m component.Method) (string, bool) {
	var found []string
	for _, p := range m.Probes {
		if h.Exists(h.Expand(p.Path)) {
			found = append(found, p.Name)
		}
	}
	if len(found) == 0 {
		return "", false
	}
	return strings.Join(found, ", "), true
}

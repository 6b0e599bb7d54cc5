// Package khronos loads registries in the Khronos XML format (gl.xml).
package khronos

import (
	"context"
	"encoding/xml"
	"io"
	"os"
	"regexp"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/mod/semver"

	"github.com/refaktor/glgen/registry"
)

type xmlEnum struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
	API   string `xml:"api,attr"`
}

type xmlEnums struct {
	Namespace string    `xml:"namespace,attr"`
	Enum      []xmlEnum `xml:"enum"`
}

// xmlDecl is a <proto> or <param> element. The type is whatever text
// surrounds the <name> child.
type xmlDecl struct {
	Name  string `xml:"name"`
	Inner string `xml:",innerxml"`
}

type xmlCommand struct {
	Proto xmlDecl   `xml:"proto"`
	Param []xmlDecl `xml:"param"`
}

type xmlRef struct {
	XMLName xml.Name
	Name    string `xml:"name,attr"`
}

type xmlRequire struct {
	XMLName xml.Name
	API     string   `xml:"api,attr"`
	Items   []xmlRef `xml:",any"`
}

type xmlFeature struct {
	API      string       `xml:"api,attr"`
	Name     string       `xml:"name,attr"`
	Number   string       `xml:"number,attr"`
	Sections []xmlRequire `xml:",any"`
}

type xmlExtension struct {
	Name      string       `xml:"name,attr"`
	Supported string       `xml:"supported,attr"`
	Sections  []xmlRequire `xml:",any"`
}

type xmlRegistry struct {
	XMLName    xml.Name       `xml:"registry"`
	Enums      []xmlEnums     `xml:"enums"`
	Commands   []xmlCommand   `xml:"commands>command"`
	Features   []xmlFeature   `xml:"feature"`
	Extensions []xmlExtension `xml:"extensions>extension"`
}

// Loader reads a registry file. Only features and extensions for the
// listed APIs are kept.
type Loader struct {
	Path string
	APIs []string
}

func (l *Loader) Load(ctx context.Context) (*registry.Registry, error) {
	f, err := os.Open(l.Path)
	if err != nil {
		return nil, errors.Wrap(err, "open registry")
	}
	defer f.Close()
	reg, err := Parse(ctx, f, l.APIs)
	if err != nil {
		return nil, errors.Wrapf(err, "registry %v", l.Path)
	}
	return reg, nil
}

// Parse decodes a registry from r. Feature blocks are returned first,
// ordered by API and version number, followed by the extensions in
// document order, one module per requested API in the order of apis.
func Parse(ctx context.Context, r io.Reader, apis []string) (*registry.Registry, error) {
	var x xmlRegistry
	if err := xml.NewDecoder(r).Decode(&x); err != nil {
		return nil, errors.Wrap(err, "decode")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	wantAPI := func(api string) bool {
		return api == "" || slices.Contains(apis, api)
	}

	enums := make(map[string]*registry.Enum)
	for _, group := range x.Enums {
		for _, e := range group.Enum {
			if !wantAPI(e.API) {
				continue
			}
			// API-specific values win over generic ones.
			if _, ok := enums[e.Name]; ok && e.API == "" {
				continue
			}
			enums[e.Name] = &registry.Enum{Name: e.Name, Value: e.Value}
		}
	}

	commands := make(map[string]*registry.Command, len(x.Commands))
	for _, c := range x.Commands {
		cmd := &registry.Command{
			Name:       strings.TrimSpace(c.Proto.Name),
			ReturnType: declType(c.Proto.Inner),
		}
		for _, p := range c.Param {
			cmd.ArgTypes = append(cmd.ArgTypes, declType(p.Inner))
			cmd.ArgNames = append(cmd.ArgNames, strings.TrimSpace(p.Name))
		}
		commands[cmd.Name] = cmd
	}

	resolve := func(module, api string, sections []xmlRequire) ([]registry.Requirement, error) {
		var res []registry.Requirement
		for _, sec := range sections {
			var isRequire bool
			switch sec.XMLName.Local {
			case "require":
				isRequire = true
			case "remove":
				isRequire = false
			default:
				continue
			}
			if sec.API != "" && sec.API != api {
				continue
			}
			req := registry.Requirement{Require: isRequire}
			for _, ref := range sec.Items {
				switch ref.XMLName.Local {
				case "enum":
					e, ok := enums[ref.Name]
					if !ok {
						return nil, errors.Newf("%v: undefined enum %v", module, ref.Name)
					}
					req.Items = append(req.Items, e)
				case "command":
					c, ok := commands[ref.Name]
					if !ok {
						return nil, errors.Newf("%v: undefined command %v", module, ref.Name)
					}
					req.Items = append(req.Items, c)
				}
			}
			res = append(res, req)
		}
		return res, nil
	}

	reg := &registry.Registry{}

	features := slices.Clone(x.Features)
	slices.SortStableFunc(features, func(a, b xmlFeature) int {
		if c := strings.Compare(a.API, b.API); c != 0 {
			return c
		}
		return semver.Compare("v"+a.Number, "v"+b.Number)
	})
	for _, feat := range features {
		if !slices.Contains(apis, feat.API) {
			continue
		}
		reqs, err := resolve(feat.Name, feat.API, feat.Sections)
		if err != nil {
			return nil, err
		}
		reg.Modules = append(reg.Modules, &registry.Module{
			Name:         feat.Name,
			API:          feat.API,
			Feature:      true,
			Requirements: reqs,
		})
	}

	// Extensions are emitted once per requested API they support.
	for _, ext := range x.Extensions {
		supported := strings.Split(ext.Supported, "|")
		for _, api := range apis {
			if !slices.Contains(supported, api) {
				continue
			}
			reqs, err := resolve(ext.Name, api, ext.Sections)
			if err != nil {
				return nil, err
			}
			reg.Modules = append(reg.Modules, &registry.Module{
				Name:         ext.Name,
				API:          api,
				Requirements: reqs,
			})
		}
	}

	return reg, nil
}

var (
	reNameElem = regexp.MustCompile(`(?s)<name>.*?</name>`)
	reTag      = regexp.MustCompile(`<[^>]*>`)
	reSpaces   = regexp.MustCompile(`\s+`)
)

// declType extracts the C type of a <proto> or <param> element from its
// inner XML, e.g. "const <ptype>GLfloat</ptype> *<name>v</name>"
// yields "const GLfloat *".
func declType(inner string) string {
	s := reNameElem.ReplaceAllString(inner, "")
	s = reTag.ReplaceAllString(s, "")
	s = strings.NewReplacer("&amp;", "&", "&lt;", "<", "&gt;", ">").Replace(s)
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

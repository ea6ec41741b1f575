package sources

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/LJTian/NoticeHub/internal/collector"
	"gopkg.in/yaml.v3"
)

// ErrNotFound 请求的分组或子分组不存在
var ErrNotFound = errors.New("source not found")

// Entry 一个命名的公告板
type Entry struct {
	Name   string
	Source collector.Source
}

// Group 分组：要么是单个公告板（Single），要么是有序的子公告板列表（Subs）
type Group struct {
	Name   string
	Single *collector.Source
	Subs   []Entry
}

// Catalog 有序的分组表，创建后只读
type Catalog struct {
	groups []Group
	byName map[string]int
	// flat 所有子分组名以及单公告板分组名，先出现者优先
	flat map[string]collector.Source
}

// Resolution Resolve 的结果；两者都为空表示无需抓取
type Resolution struct {
	Single *collector.Source
	Group  []collector.Source
}

// Empty 没有任何需要抓取的公告板
func (r Resolution) Empty() bool {
	return r.Single == nil && len(r.Group) == 0
}

// GroupInfo 首页和 /api/v1/groups 使用的分组概要
type GroupInfo struct {
	Name string   `json:"name"`
	Subs []string `json:"subs"`
}

func New(groups []Group) (*Catalog, error) {
	c := &Catalog{
		byName: make(map[string]int, len(groups)),
		flat:   make(map[string]collector.Source),
	}
	for i, g := range groups {
		if err := validateGroup(g); err != nil {
			return nil, err
		}
		if _, dup := c.byName[g.Name]; dup {
			return nil, fmt.Errorf("duplicate group %q", g.Name)
		}
		c.byName[g.Name] = i
		c.groups = append(c.groups, g)

		if g.Single != nil {
			c.addFlat(g.Name, *g.Single)
			continue
		}
		for _, sub := range g.Subs {
			c.addFlat(sub.Name, sub.Source)
		}
	}
	return c, nil
}

func (c *Catalog) addFlat(name string, src collector.Source) {
	if _, ok := c.flat[name]; !ok {
		c.flat[name] = src
	}
}

func validateGroup(g Group) error {
	if strings.TrimSpace(g.Name) == "" {
		return errors.New("group name is empty")
	}
	if (g.Single == nil) == (len(g.Subs) == 0) {
		return fmt.Errorf("group %q: exactly one of url or subs is required", g.Name)
	}
	if g.Single != nil {
		if err := validateSource(*g.Single); err != nil {
			return fmt.Errorf("group %q: %w", g.Name, err)
		}
		return nil
	}
	seen := make(map[string]bool, len(g.Subs))
	for _, sub := range g.Subs {
		if strings.TrimSpace(sub.Name) == "" {
			return fmt.Errorf("group %q: sub name is empty", g.Name)
		}
		if seen[sub.Name] {
			return fmt.Errorf("group %q: duplicate sub %q", g.Name, sub.Name)
		}
		seen[sub.Name] = true
		if err := validateSource(sub.Source); err != nil {
			return fmt.Errorf("group %q sub %q: %w", g.Name, sub.Name, err)
		}
	}
	return nil
}

func validateSource(src collector.Source) error {
	u, err := url.Parse(src.URL)
	if err != nil {
		return fmt.Errorf("invalid url %q: %w", src.URL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("url %q must be absolute http(s)", src.URL)
	}
	if _, err := collector.ParseSourceClass(string(src.Class)); err != nil {
		return err
	}
	return nil
}

// Resolve 把 /fetch 的 group/sub 参数映射为要抓取的公告板。
// 指定 sub 时先在该 group 的子分组中查找，再查扁平表；
// 只指定 group 时返回其唯一公告板或全部子公告板。
func (c *Catalog) Resolve(group, sub string) (Resolution, error) {
	if sub != "" {
		if i, ok := c.byName[group]; ok {
			for _, e := range c.groups[i].Subs {
				if e.Name == sub {
					src := e.Source
					return Resolution{Single: &src}, nil
				}
			}
		}
		if src, ok := c.flat[sub]; ok {
			return Resolution{Single: &src}, nil
		}
		return Resolution{}, fmt.Errorf("sub %q: %w", sub, ErrNotFound)
	}

	if group == "" {
		return Resolution{}, nil
	}
	i, ok := c.byName[group]
	if !ok {
		return Resolution{}, fmt.Errorf("group %q: %w", group, ErrNotFound)
	}
	g := c.groups[i]
	if g.Single != nil {
		src := *g.Single
		return Resolution{Single: &src}, nil
	}
	return Resolution{Group: g.Sources()}, nil
}

// Sources 分组下的全部公告板，按表中顺序
func (g Group) Sources() []collector.Source {
	if g.Single != nil {
		return []collector.Source{*g.Single}
	}
	out := make([]collector.Source, 0, len(g.Subs))
	for _, e := range g.Subs {
		out = append(out, e.Source)
	}
	return out
}

// Groups 返回分组概要，Subs 永远不为 nil
func (c *Catalog) Groups() []GroupInfo {
	out := make([]GroupInfo, 0, len(c.groups))
	for _, g := range c.groups {
		info := GroupInfo{Name: g.Name, Subs: make([]string, 0, len(g.Subs))}
		for _, e := range g.Subs {
			info.Subs = append(info.Subs, e.Name)
		}
		out = append(out, info)
	}
	return out
}

// All 返回全部分组（副本），预热任务使用
func (c *Catalog) All() []Group {
	out := make([]Group, len(c.groups))
	copy(out, c.groups)
	return out
}

type fileSource struct {
	Name  string `yaml:"name"`
	URL   string `yaml:"url"`
	Class string `yaml:"class"`
}

type fileGroup struct {
	Name  string       `yaml:"name"`
	URL   string       `yaml:"url"`
	Class string       `yaml:"class"`
	Subs  []fileSource `yaml:"subs"`
}

type fileTable struct {
	Groups []fileGroup `yaml:"groups"`
}

// LoadFile 从 YAML 文件读取分组表
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sources file: %w", err)
	}
	return Parse(data)
}

// Parse 解析 YAML 分组表
func Parse(data []byte) (*Catalog, error) {
	var table fileTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parse sources file: %w", err)
	}
	if len(table.Groups) == 0 {
		return nil, errors.New("sources file has no groups")
	}

	groups := make([]Group, 0, len(table.Groups))
	for _, fg := range table.Groups {
		g := Group{Name: fg.Name}
		if fg.URL != "" {
			class, err := collector.ParseSourceClass(fg.Class)
			if err != nil {
				return nil, fmt.Errorf("group %q: %w", fg.Name, err)
			}
			g.Single = &collector.Source{URL: fg.URL, Class: class}
		}
		for _, fs := range fg.Subs {
			class, err := collector.ParseSourceClass(fs.Class)
			if err != nil {
				return nil, fmt.Errorf("group %q sub %q: %w", fg.Name, fs.Name, err)
			}
			g.Subs = append(g.Subs, Entry{Name: fs.Name, Source: collector.Source{URL: fs.URL, Class: class}})
		}
		groups = append(groups, g)
	}
	return New(groups)
}

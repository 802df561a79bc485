package generator

import (
	"fmt"
	"go/ast"
	goparser "go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/dave/jennifer/jen"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/propgen/internal/model"
	"github.com/cmmoran/propgen/internal/parser"
)

func parse(t *testing.T, src string) []*model.Property {
	t.Helper()
	props, err := parser.Parse("test.props", []byte(src))
	require.NoError(t, err)
	return props
}

func generateOne(t *testing.T, src string) (*Output, error) {
	t.Helper()
	props := parse(t, src)
	require.Len(t, props, 1)
	g := New(Config{Imports: map[string]string{"widgets": "example.com/ui/widgets"}})
	return g.Property(1, props[0])
}

func TestImpliedFlags(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []Flag
	}{
		{
			name: "get only is readable",
			src:  `#[string] "name" => { get { self.name } }`,
			want: []Flag{FlagReadable},
		},
		{
			name: "set only is writable",
			src:  `#[string] "name" => { set { self.name = value.String() } }`,
			want: []Flag{FlagWritable},
		},
		{
			name: "get and set is readwrite",
			src:  `#[string] "name" => { get { self.name } set { self.name = value.String() } }`,
			want: []Flag{FlagReadwrite},
		},
		{
			name: "explicit flags come first",
			src:  `#[string(readable, explicit_notify)] "name" => { get { self.name } }`,
			want: []Flag{FlagReadable, FlagExplicitNotify},
		},
		{
			name: "duplicates keep first occurrence",
			src:  `#[string(explicit_notify, deprecated, explicit_notify)] "name" => { get { self.name } }`,
			want: []Flag{FlagExplicitNotify, FlagDeprecated, FlagReadable},
		},
		{
			name: "readwrite ignores explicit accessibility",
			src:  `#[string(readable, construct_only)] "name" => { get { self.name } set { self.name = value.String() } }`,
			want: []Flag{FlagReadable, FlagConstructOnly, FlagReadwrite},
		},
		{
			name: "set only accepts construct",
			src:  `#[int(construct, lax_validation)] "count" => { set { self.count = value.Int() } }`,
			want: []Flag{FlagConstruct, FlagLaxValidation, FlagWritable},
		},
		{
			name: "every flag name resolves",
			src: `#[boolean(readwrite, static_name, private, static_nick, static_blurb, writable)]
"b" => { get { self.b } set { self.b = value.Boolean() } }`,
			want: []Flag{FlagReadwrite, FlagStaticName, FlagPrivate, FlagStaticNick, FlagStaticBlurb, FlagWritable},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out, err := generateOne(t, tt.src)
			require.NoError(t, err)
			require.Equal(t, tt.want, out.Flags)
		})
	}
}

func TestDescriptor(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "simple",
			src:  `#[string] "name" => { get { E1 } set { E2() } }`,
			want: `glib.NewParamSpecString("name").Flags(glib.ParamReadwrite).Build()`,
		},
		{
			name: "explicit flags",
			src:  `#[string(readable, explicit_notify)] "name" => { get { E1 } }`,
			want: `glib.NewParamSpecString("name").Flags(glib.ParamReadable | glib.ParamExplicitNotify).Build()`,
		},
		{
			name: "documented",
			src: `/// contains the name of this object
#[string(nick = "Object Name")]
"name" => { get { E1 } }`,
			want: `glib.NewParamSpecString("name").Flags(glib.ParamReadable).Blurb("contains the name of this object").Nick("Object Name").Build()`,
		},
		{
			name: "multi-line documentation",
			src: `///   first line
/// second line
#[int64] "n" => { set { E2() } }`,
			want: `glib.NewParamSpecInt64("n").Flags(glib.ParamWritable).Blurb("first line\n second line").Build()`,
		},
		{
			name: "custom steps keep argument order after blurb",
			src: `/// doc
#[int(minimum = -10, default_value = 5, maximum = 100)] "count" => { get { E1 } }`,
			want: `glib.NewParamSpecInt("count").Flags(glib.ParamReadable).Blurb("doc").Minimum(-10).DefaultValue(5).Maximum(100).Build()`,
		},
		{
			name: "local object type",
			src:  `#[object(Button)] "ok-button" => { get { E1 } set { E2() } }`,
			want: `glib.NewParamSpecObject("ok-button", glib.TypeFor[Button]()).Flags(glib.ParamReadwrite).Build()`,
		},
		{
			name: "imported object type with steps",
			src:  `#[object(widgets.Button, nick = "Ok Button", blurb = "The primary button")] "ok-button" => { get { E1 } set { E2() } }`,
			want: `glib.NewParamSpecObject("ok-button", glib.TypeFor[widgets.Button]()).Flags(glib.ParamReadwrite).Nick("Ok Button").Blurb("The primary button").Build()`,
		},
		{
			name: "unknown package alias is kept",
			src:  `#[object(gio.File)] "file" => { get { E1 } }`,
			want: `glib.NewParamSpecObject("file", glib.TypeFor[gio.File]()).Flags(glib.ParamReadable).Build()`,
		},
		{
			name: "every primitive tag",
			src:  `#[char] "c" => { get { E1 } }`,
			want: `glib.NewParamSpecChar("c").Flags(glib.ParamReadable).Build()`,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out, err := generateOne(t, tt.src)
			require.NoError(t, err)
			require.Equal(t, tt.want, fmt.Sprintf("%#v", out.Descriptor))
		})
	}
}

func TestPrimitiveConstructors(t *testing.T) {
	for tag, suffix := range primitiveTags {
		out, err := generateOne(t, fmt.Sprintf(`#[%s] "p" => { get { E1 } }`, tag))
		require.NoError(t, err, tag)
		require.True(t, strings.HasPrefix(fmt.Sprintf("%#v", out.Descriptor), "glib.NewParamSpec"+suffix+`("p")`), tag)
	}
}

func TestGenerationErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr error
		wantMsg string
	}{
		{
			name:    "duplicate get",
			src:     `#[string] "x" => { get { a } get { b } }`,
			wantErr: model.ErrDuplicateBlock,
			wantMsg: "duplicate get",
		},
		{
			name:    "duplicate set",
			src:     `#[string] "x" => { set { a() } get { b } set { c() } }`,
			wantErr: model.ErrDuplicateBlock,
			wantMsg: "duplicate set",
		},
		{
			name:    "no blocks",
			src:     `#[string] "x" => { }`,
			wantErr: model.ErrMissingBlock,
			wantMsg: "at least one block",
		},
		{
			name:    "unsupported block",
			src:     `#[string] "x" => { get { a } fetch { b } }`,
			wantErr: model.ErrUnsupportedBlock,
			wantMsg: "unsupported block: fetch",
		},
		{
			name:    "object without type",
			src:     `#[object] "x" => { get { a } }`,
			wantErr: model.ErrObjectType,
			wantMsg: "requires an object type",
		},
		{
			name:    "object with key/value first",
			src:     `#[object(nick = "x", Button)] "x" => { get { a } }`,
			wantErr: model.ErrObjectType,
			wantMsg: "not key/value",
		},
		{
			name:    "unimplemented tag",
			src:     `#[uint] "x" => { get { a } }`,
			wantErr: model.ErrUnimplementedTag,
			wantMsg: "not yet implemented: uint",
		},
		{
			name:    "unsupported flag",
			src:     `#[string(sticky)] "x" => { get { a } }`,
			wantErr: model.ErrUnsupportedFlag,
			wantMsg: "unsupported flag: sticky",
		},
		{
			name:    "unsupported flag even with both blocks",
			src:     `#[string(glib.readable)] "x" => { get { a } set { b() } }`,
			wantErr: model.ErrUnsupportedFlag,
			wantMsg: "unsupported flag: glib.readable",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out, err := generateOne(t, tt.src)
			require.Nil(t, out)
			require.ErrorIs(t, err, tt.wantErr)
			require.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestFlagConflicts(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		conflict bool
		flag     string
		missing  string
	}{
		{name: "get only writable", src: `#[string(writable)] "x" => { get { a } }`, conflict: true, flag: "writable", missing: "set"},
		{name: "get only readwrite", src: `#[string(readwrite)] "x" => { get { a } }`, conflict: true, flag: "readwrite", missing: "set"},
		{name: "get only construct", src: `#[string(construct)] "x" => { get { a } }`, conflict: true, flag: "construct", missing: "set"},
		{name: "get only construct_only", src: `#[string(explicit_notify, construct_only)] "x" => { get { a } }`, conflict: true, flag: "construct_only", missing: "set"},
		{name: "set only readable", src: `#[string(readable)] "x" => { set { a() } }`, conflict: true, flag: "readable", missing: "get"},
		{name: "set only readwrite", src: `#[string(readwrite)] "x" => { set { a() } }`, conflict: true, flag: "readwrite", missing: "get"},
		{name: "get only readable", src: `#[string(readable)] "x" => { get { a } }`},
		{name: "set only writable", src: `#[string(writable, construct)] "x" => { set { a() } }`},
		{name: "read write with anything", src: `#[string(readable, writable, construct_only)] "x" => { get { a } set { b() } }`},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out, err := generateOne(t, tt.src)
			if !tt.conflict {
				require.NoError(t, err)
				require.NotNil(t, out)
				return
			}
			require.ErrorIs(t, err, model.ErrFlagConflict)

			var diag *model.Error
			require.ErrorAs(t, err, &diag)
			require.Equal(t, fmt.Sprintf(`property "x" is marked %s, but does not have a '%s' block`, tt.flag, tt.missing), diag.Msg)
			require.Equal(t, fmt.Sprintf(`remove %q flag, or add a '%s' block below`, tt.flag, tt.missing), diag.Help)
			require.Equal(t, 1, diag.Pos.Line)
			require.Positive(t, diag.Pos.Column)
		})
	}
}

func TestArms(t *testing.T) {
	out, err := generateOne(t, `#[string] "name" => { get { E1 } set { E2 } }`)
	require.NoError(t, err)
	require.NotNil(t, out.Getter)
	require.NotNil(t, out.Setter)
	require.Equal(t, 1, out.Getter.ID)
	require.Equal(t, "E1", strings.TrimSpace(out.Getter.Body.Text))
	require.Equal(t, "E2", strings.TrimSpace(out.Setter.Body.Text))

	out, err = generateOne(t, `#[string] "name" => { set { E2() } }`)
	require.NoError(t, err)
	require.Nil(t, out.Getter)
	require.NotNil(t, out.Setter)
}

func renderArm(arm *Arm) string {
	return fmt.Sprintf("%#v", jen.Switch(jen.Id("id")).Block(arm.Code()))
}

func TestArmCode(t *testing.T) {
	tests := []struct {
		name     string
		arm      *Arm
		contains []string
		excludes []string
	}{
		{
			name:     "getter expression is returned",
			arm:      &Arm{ID: 3, Kind: ArmGet, Body: model.Fragment{Text: " self.name.Value() "}},
			contains: []string{"case 3:", "return self.name.Value()"},
		},
		{
			name: "getter statements are spliced",
			arm: &Arm{ID: 1, Kind: ArmGet, Body: model.Fragment{Text: `
				v := self.name.Value()
				return v`}},
			contains: []string{"v := self.name.Value()", "return v"},
			excludes: []string{"return v :="},
		},
		{
			name: "getter expression after a comment stays returned",
			arm: &Arm{ID: 1, Kind: ArmGet, Body: model.Fragment{Text: `
// cached value
glib.NewValue(w.name)
`}},
			contains: []string{"return (", "// cached value", "glib.NewValue(w.name)"},
			excludes: []string{"return //"},
		},
		{
			name:     "getter expression with trailing comment",
			arm:      &Arm{ID: 1, Kind: ArmGet, Body: model.Fragment{Text: "glib.NewValue(w.name) /* cached */"}},
			contains: []string{"return (", "glib.NewValue(w.name) /* cached */"},
		},
		{
			name:     "getter panic is a statement",
			arm:      &Arm{ID: 4, Kind: ArmGet, Body: model.Fragment{Text: ` panic("write-only") `}},
			contains: []string{"case 4:", `panic("write-only")`},
			excludes: []string{"return"},
		},
		{
			name:     "setter call is a statement",
			arm:      &Arm{ID: 2, Kind: ArmSet, Body: model.Fragment{Text: "self.name.Set(value)"}},
			contains: []string{"case 2:", "self.name.Set(value)"},
			excludes: []string{"_ =", "return"},
		},
		{
			name:     "setter value is discarded",
			arm:      &Arm{ID: 2, Kind: ArmSet, Body: model.Fragment{Text: "self.name"}},
			contains: []string{"_ = self.name"},
		},
		{
			name:     "setter assignment is spliced",
			arm:      &Arm{ID: 2, Kind: ArmSet, Body: model.Fragment{Text: "self.name = value.String()"}},
			contains: []string{"self.name = value.String()"},
			excludes: []string{"_ ="},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := renderArm(tt.arm)
			for _, s := range tt.contains {
				require.Contains(t, got, s)
			}
			for _, s := range tt.excludes {
				require.NotContains(t, got, s)
			}
		})
	}
}

func TestGetterReturnsCommentedExpression(t *testing.T) {
	props := parse(t, `#[string] "name" => {
	get {
		// cached value
		glib.NewValue(w.name)
	}
}`)
	out, err := New(Config{}).Property(1, props[0])
	require.NoError(t, err)

	src := "package widget\n\nfunc property(id uint) any {\n" + renderArm(out.Getter) + "\nreturn nil\n}\n"
	f, err := goparser.ParseFile(token.NewFileSet(), "arm.go", src, goparser.ParseComments)
	require.NoError(t, err, src)

	var results []int
	ast.Inspect(f, func(n ast.Node) bool {
		if ret, ok := n.(*ast.ReturnStmt); ok {
			results = append(results, len(ret.Results))
		}
		return true
	})
	require.Equal(t, []int{1, 1}, results, src)
}

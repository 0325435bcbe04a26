package macro_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/okian/lfgmenu/internal/domain/macro"
	"github.com/okian/lfgmenu/internal/domain/model"
	"github.com/okian/lfgmenu/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestIdentifier(t *testing.T) {
	Convey("Given tip names", t, func() {
		Convey("When the name contains spaces", func() {
			id, err := macro.Identifier("Cadaver Counter")

			Convey("Then spaces should be removed", func() {
				So(err, ShouldBeNil)
				So(id, ShouldEqual, "CadaverCounter")
			})
		})

		Convey("When the name contains tabs, newlines and unicode spaces", func() {
			id, err := macro.Identifier(" Hami\tRaid\n Tip  ")

			Convey("Then every whitespace rune should be removed", func() {
				So(err, ShouldBeNil)
				So(id, ShouldEqual, "HamiRaidTip")
			})
		})

		Convey("When the name is only whitespace", func() {
			_, err := macro.Identifier(" \t ")

			Convey("Then it should fail with ErrInvalidTipName", func() {
				So(errors.Is(err, macro.ErrInvalidTipName), ShouldBeTrue)
			})
		})

		Convey("When the name is empty", func() {
			_, err := macro.Identifier("")

			Convey("Then it should fail with ErrInvalidTipName", func() {
				So(errors.Is(err, macro.ErrInvalidTipName), ShouldBeTrue)
			})
		})

		Convey("When the name contains a quote", func() {
			_, err := macro.Identifier(`The "Boss"`)

			Convey("Then it should fail with ErrInvalidTipName", func() {
				So(errors.Is(err, macro.ErrInvalidTipName), ShouldBeTrue)
			})
		})

		Convey("When the name contains an apostrophe", func() {
			_, err := macro.Identifier("Tin Mage's Door")

			Convey("Then it should fail with ErrInvalidTipName", func() {
				So(errors.Is(err, macro.ErrInvalidTipName), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "quote")
			})
		})
	})
}

func TestFormat(t *testing.T) {
	Convey("Given a list of tips", t, func() {
		Convey("When formatting a single tip", func() {
			frag, err := macro.Format([]model.Tip{
				{Name: "Cadaver Counter", Content: "Defeat the leader"},
			})

			Convey("Then it should produce one macro with no separator", func() {
				So(err, ShouldBeNil)
				So(frag, ShouldEqual, "macro CadaverCounter say Defeat the leader")
			})
		})

		Convey("When formatting two tips", func() {
			frag, err := macro.Format([]model.Tip{
				{Name: "Cadaver Counter", Content: "Defeat the leader"},
				{Name: "Speed Run", Content: "Skip the side rooms"},
			})

			Convey("Then exactly one separator should sit between them", func() {
				So(err, ShouldBeNil)
				So(frag, ShouldEqual, "macro CadaverCounter say Defeat the leader$$macro SpeedRun say Skip the side rooms")
				So(strings.Count(frag, macro.Separator), ShouldEqual, 1)
				So(strings.HasSuffix(frag, macro.Separator), ShouldBeFalse)
			})
		})

		Convey("When content ends with a dollar sign", func() {
			frag, err := macro.Format([]model.Tip{{Name: "Cost", Content: "5$"}})

			Convey("Then only the final separator should be removed", func() {
				So(err, ShouldBeNil)
				So(frag, ShouldEqual, "macro Cost say 5$")
			})
		})

		Convey("When the list is empty", func() {
			frag, err := macro.Format(nil)

			Convey("Then the fragment should be empty", func() {
				So(err, ShouldBeNil)
				So(frag, ShouldEqual, "")
			})
		})

		Convey("When one tip has a blank name", func() {
			_, err := macro.Format([]model.Tip{
				{Name: "Fine", Content: "ok"},
				{Name: "   ", Content: "broken"},
			})

			Convey("Then formatting should fail", func() {
				So(errors.Is(err, macro.ErrInvalidTipName), ShouldBeTrue)
			})
		})
	})
}

func TestGroup(t *testing.T) {
	Convey("Given categorized tips in mixed order", t, func() {
		tips := []model.Tip{
			{Category: types.CategoryBadge, Name: "Badge One", Content: "b1"},
			{Category: types.CategoryGeneral, Name: "General One", Content: "g1"},
			{Category: types.CategoryBadge, Name: "Badge Two", Content: "b2"},
			{Category: types.CategoryGeneral, Name: "General Two", Content: "g2"},
		}

		Convey("When grouping", func() {
			sections, err := macro.Group(tips)

			Convey("Then sections should follow General, Speed, Badge and skip empty ones", func() {
				So(err, ShouldBeNil)
				So(len(sections), ShouldEqual, 2)
				So(sections[0].Category, ShouldEqual, types.CategoryGeneral)
				So(sections[1].Category, ShouldEqual, types.CategoryBadge)
			})

			Convey("And each section should keep its own tips in input order", func() {
				So(sections[0].Macros, ShouldEqual, "macro GeneralOne say g1$$macro GeneralTwo say g2")
				So(sections[1].Macros, ShouldEqual, "macro BadgeOne say b1$$macro BadgeTwo say b2")
			})

			Convey("And flattening should give grouped order", func() {
				want := []model.Tip{tips[1], tips[3], tips[0], tips[2]}
				So(cmp.Diff(want, macro.Flatten(sections)), ShouldBeEmpty)
			})
		})

		Convey("When a tip is uncategorized", func() {
			_, err := macro.Group([]model.Tip{{Name: "flat", Content: "x"}})

			Convey("Then grouping should fail", func() {
				So(errors.Is(err, types.ErrUnknownValue), ShouldBeTrue)
			})
		})

		Convey("When there are no tips", func() {
			sections, err := macro.Group(nil)

			Convey("Then there should be no sections", func() {
				So(err, ShouldBeNil)
				So(sections, ShouldBeEmpty)
			})
		})
	})
}

func TestProperty_FormatJoin(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("entries are joined by exactly one separator with none trailing", prop.ForAll(
		func(ids []string, content string) bool {
			tips := make([]model.Tip, len(ids))
			for i, id := range ids {
				tips[i] = model.Tip{Name: " " + id + " ", Content: content}
			}
			frag, err := macro.Format(tips)
			if err != nil {
				return false
			}
			if len(tips) == 0 {
				return frag == ""
			}
			parts := strings.Split(frag, macro.Separator)
			if len(parts) != len(tips) {
				return false
			}
			for i, p := range parts {
				if p != "macro "+ids[i]+" say "+content {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Identifier()),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

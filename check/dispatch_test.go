package check_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rvvicheck/check"
)

var _ = Describe("Record table", func() {
	It("should list every record keyword", func() {
		var names []string
		for _, k := range check.Keywords() {
			names = append(names, k.String())
		}
		Expect(names).To(Equal([]string{
			"VENDOR", "VERSION", "PARAMS", "HART", "ISSUE", "ORDER", "RET", "TRAP",
			"X", "F", "V", "C", "NET", "MODE", "DM", "META",
		}))
	})

	DescribeTable("minimum arity",
		func(name string, arity int) {
			k, ok := check.LookupKeyword(name)
			Expect(ok).To(BeTrue())
			Expect(k.String()).To(Equal(name))
			Expect(k.Arity()).To(Equal(arity))
		},
		Entry(nil, "VENDOR", 3),
		Entry(nil, "VERSION", 2),
		Entry(nil, "PARAMS", 6),
		Entry(nil, "HART", 1),
		Entry(nil, "ISSUE", 1),
		Entry(nil, "ORDER", 1),
		Entry(nil, "RET", 2),
		Entry(nil, "TRAP", 2),
		Entry(nil, "X", 2),
		Entry(nil, "F", 2),
		Entry(nil, "V", 2),
		Entry(nil, "C", 2),
		Entry(nil, "NET", 2),
		Entry(nil, "MODE", 1),
		Entry(nil, "DM", 1),
		Entry(nil, "META", 1),
	)

	It("should not find unknown keywords", func() {
		_, ok := check.LookupKeyword("ret")
		Expect(ok).To(BeFalse())
		_, ok = check.LookupKeyword("")
		Expect(ok).To(BeFalse())
	})

	It("should name out-of-table keywords", func() {
		Expect(check.Keyword(200).String()).To(Equal("UNKNOWN"))
		Expect(check.Keyword(200).Arity()).To(BeZero())
	})

	DescribeTable("short records fail with arity errors",
		func(text string) {
			state := check.NewState()
			err := state.CheckLine(line(text), nil)
			Expect(err).To(MatchError(ContainSubstring("Not enough tokens")))
		},
		Entry(nil, "VENDOR Imperas 1"),
		Entry(nil, "VERSION 1"),
		Entry(nil, "PARAMS 6 ILEN 32 XLEN 64"),
		Entry(nil, "HART"),
		Entry(nil, "X 1"),
		Entry(nil, "META"),
		Entry(nil, "MODE 3 DM"),
	)
})

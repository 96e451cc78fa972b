package field_test

import (
	"fmt"
	"math/big"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rvvicheck/field"
)

var _ = Describe("Field validators", func() {
	Describe("ParseIdentifier", func() {
		DescribeTable("accepted tokens",
			func(token string) {
				v, err := field.ParseIdentifier(token)
				Expect(err).NotTo(HaveOccurred())
				Expect(v).To(Equal(token))
			},
			Entry("letters", "ILEN"),
			Entry("mixed case", "Imperas"),
			Entry("digits and underscore", "irq_0"),
			Entry("single letter", "x"),
		)

		DescribeTable("rejected tokens",
			func(token string) {
				_, err := field.ParseIdentifier(token)
				Expect(err).To(HaveOccurred())
				Expect(field.IsKind(err, field.KindFormat)).To(BeTrue())
			},
			Entry("empty", ""),
			Entry("leading digit", "0abc"),
			Entry("leading underscore", "_abc"),
			Entry("dash", "a-b"),
			Entry("dot", "a.b"),
		)

		It("should name the offending token", func() {
			_, err := field.ParseIdentifier("9lives")
			Expect(err.Error()).To(ContainSubstring("'9lives'"))
		})
	})

	Describe("ParseInt", func() {
		DescribeTable("accepted tokens",
			func(token string, want int64) {
				v, err := field.ParseInt(token)
				Expect(err).NotTo(HaveOccurred())
				Expect(v).To(Equal(want))
			},
			Entry("zero", "0", int64(0)),
			Entry("positive", "32", int64(32)),
			Entry("leading zeros", "007", int64(7)),
			Entry("negative", "-1", int64(-1)),
			Entry("plus sign", "+4", int64(4)),
		)

		DescribeTable("rejected tokens",
			func(token string) {
				_, err := field.ParseInt(token)
				Expect(field.IsKind(err, field.KindFormat)).To(BeTrue())
			},
			Entry("hex digits", "1f"),
			Entry("hex prefix", "0x10"),
			Entry("float", "1.5"),
			Entry("word", "ILEN"),
			Entry("empty", ""),
		)
	})

	Describe("ParseHex", func() {
		DescribeTable("accepted tokens",
			func(token string, want uint64) {
				v, err := field.ParseHex(token)
				Expect(err).NotTo(HaveOccurred())
				Expect(v.Uint64()).To(Equal(want))
			},
			Entry("plain", "1000", uint64(0x1000)),
			Entry("upper case", "DEADBEEF", uint64(0xdeadbeef)),
			Entry("lower case", "00000013", uint64(0x13)),
			Entry("0x prefix", "0x80000000", uint64(0x80000000)),
			Entry("0X prefix", "0XfF", uint64(0xff)),
		)

		DescribeTable("rejected tokens",
			func(token string) {
				_, err := field.ParseHex(token)
				Expect(field.IsKind(err, field.KindFormat)).To(BeTrue())
			},
			Entry("non hex letter", "12g4"),
			Entry("bare prefix", "0x"),
			Entry("sign", "-1"),
			Entry("empty", ""),
			Entry("underscore", "ff_ff"),
		)

		It("should parse values wider than 64 bits", func() {
			v, err := field.ParseHex("1" + fmt.Sprintf("%032x", 0))
			Expect(err).NotTo(HaveOccurred())
			Expect(v.BitLen()).To(Equal(129))
		})
	})

	Describe("CheckWidth", func() {
		pow2 := func(bits uint) *big.Int {
			return new(big.Int).Lsh(big.NewInt(1), bits)
		}

		It("should accept the largest value of the width", func() {
			top := new(big.Int).Sub(pow2(64), big.NewInt(1))
			Expect(field.CheckWidth(top, 64, "X1 register", "XLEN")).To(Succeed())
		})

		It("should reject 2^width", func() {
			err := field.CheckWidth(pow2(32), 32, "PC", "XLEN")
			Expect(field.IsKind(err, field.KindRange)).To(BeTrue())
			Expect(err.Error()).To(Equal("PC value 0x100000000 exceeds XLEN limit (32 bits)."))
		})

		It("should only accept zero for width 0", func() {
			Expect(field.FitsWidth(big.NewInt(0), 0)).To(BeTrue())
			Expect(field.FitsWidth(big.NewInt(1), 0)).To(BeFalse())
		})
	})

	Describe("Kind", func() {
		It("should render kind names", func() {
			Expect(field.KindState.String()).To(Equal("StateError"))
			Expect(field.Kind(42).String()).To(Equal("Kind(42)"))
		})

		It("should not match unrelated errors", func() {
			Expect(field.IsKind(fmt.Errorf("plain"), field.KindFormat)).To(BeFalse())
		})

		It("should match wrapped errors", func() {
			err := fmt.Errorf("line 3: %w", field.Errorf(field.KindArity, "short"))
			Expect(field.IsKind(err, field.KindArity)).To(BeTrue())
		})
	})
})

package report_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/akita/v4/sim"
	"gopkg.in/yaml.v3"

	"github.com/sarchlab/rvvicheck/check"
	"github.com/sarchlab/rvvicheck/report"
)

const trace = `VERSION 1 4
PARAMS 6 ILEN 32 XLEN 64 FLEN 0 VLEN 0 NHART 3 RETIRE 2 0 0 0 0 0 0 0
HART 0 RET 1000 13 X 1 5 RET 1004 13
HART 2 TRAP 2000 73 C 341 2000
`

var _ = Describe("Report", func() {
	var (
		collector *report.Collector
		checker   *check.Checker
	)

	BeforeEach(func() {
		collector = report.NewCollector()
		checker = check.NewChecker(check.WithHooks(collector))
	})

	run := func(text string) *report.Summary {
		err := checker.CheckReader(strings.NewReader(text))
		return collector.Summarize("trace.txt", checker, err)
	}

	It("should count records by keyword", func() {
		s := run(trace)
		Expect(s.Valid).To(BeTrue())
		Expect(s.Records).To(Equal(map[string]int{
			"VERSION": 1, "PARAMS": 1, "HART": 2, "RET": 2, "TRAP": 1, "X": 1, "C": 1,
		}))
		Expect(collector.Count(check.KeywordRET)).To(Equal(2))
	})

	It("should summarize harts that retired instructions", func() {
		s := run(trace)
		Expect(s.Params).To(Equal(&report.Params{ILen: 32, XLen: 64, NHarts: 3, NRetire: 2}))
		Expect(s.Harts).To(Equal([]report.Hart{
			{ID: 0, Retired: 2, Order: 2},
			{ID: 2, Retired: 1, Traps: 1, Order: 1},
		}))
		Expect(s.PhysicalLines).To(Equal(4))
		Expect(s.LogicalLines).To(Equal(4))
	})

	It("should record the failure and its line", func() {
		s := run(trace + "MODE 2\n")
		Expect(s.Valid).To(BeFalse())
		Expect(s.ErrorLine).To(Equal(5))
		Expect(s.Error).To(Equal("MODE value 2 is invalid (must be 0, 1, or 3)."))
	})

	It("should leave parameters out before PARAMS", func() {
		s := run("VERSION 1 4\n")
		Expect(s.Params).To(BeNil())
		Expect(s.Harts).To(BeEmpty())
	})

	It("should ignore line hooks and foreign items", func() {
		collector.Func(sim.HookCtx{Pos: check.HookPosLine})
		collector.Func(sim.HookCtx{Pos: check.HookPosRecord, Item: "RET"})
		Expect(collector.Count(check.KeywordRET)).To(BeZero())
	})

	It("should encode as YAML", func() {
		var buf bytes.Buffer
		Expect(report.Write(&buf, run(trace))).To(Succeed())

		var doc map[string]any
		Expect(yaml.Unmarshal(buf.Bytes(), &doc)).To(Succeed())
		Expect(doc).To(HaveKeyWithValue("valid", true))
		Expect(doc).To(HaveKeyWithValue("file", "trace.txt"))
		Expect(doc).NotTo(HaveKey("error"))
		Expect(buf.String()).To(ContainSubstring("  xlen: 64"))
	})

	It("should save and load a summary", func() {
		dir, err := os.MkdirTemp("", "rvvi-report-test")
		Expect(err).NotTo(HaveOccurred())
		defer func() { _ = os.RemoveAll(dir) }()

		path := filepath.Join(dir, "summary.yaml")
		s := run(trace)
		Expect(report.Save(path, s)).To(Succeed())

		loaded, err := report.Load(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded).To(Equal(s))
	})

	It("should fail to load a missing summary", func() {
		_, err := report.Load(filepath.Join(os.TempDir(), "no-such-summary.yaml"))
		Expect(err).To(MatchError(ContainSubstring("failed to read summary file")))
	})
})

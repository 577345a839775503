package loader_test

import (
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mcsim/loader"
)

var _ = Describe("Assembly Loader", func() {
	Describe("Parse", func() {
		It("should keep non-blank lines in order", func() {
			prog, err := loader.Parse(strings.NewReader(
				"ADD x1 x2 x3\nSUB x4 x5 x6\n"))
			Expect(err).NotTo(HaveOccurred())

			Expect(prog.Len()).To(Equal(2))
			line, ok := prog.At(0)
			Expect(ok).To(BeTrue())
			Expect(line).To(Equal("ADD x1 x2 x3"))
			line, ok = prog.At(4)
			Expect(ok).To(BeTrue())
			Expect(line).To(Equal("SUB x4 x5 x6"))
		})

		It("should drop blank lines and surrounding whitespace", func() {
			prog, err := loader.Parse(strings.NewReader(
				"\n  ADD x1 x2 x3  \n\n\t\nSUB x4 x5 x6"))
			Expect(err).NotTo(HaveOccurred())

			Expect(prog.Len()).To(Equal(2))
			line, _ := prog.At(0)
			Expect(line).To(Equal("ADD x1 x2 x3"))
		})

		It("should produce an empty program from empty input", func() {
			prog, err := loader.Parse(strings.NewReader(""))
			Expect(err).NotTo(HaveOccurred())
			Expect(prog.Len()).To(Equal(0))
		})
	})

	Describe("At", func() {
		var prog *loader.Program

		BeforeEach(func() {
			prog = loader.FromLines("ADD x1 x2 x3", "SUB x4 x5 x6")
		})

		It("should index by pc/4", func() {
			line, ok := prog.At(4)
			Expect(ok).To(BeTrue())
			Expect(line).To(Equal("SUB x4 x5 x6"))
		})

		It("should reject a pc past the end", func() {
			_, ok := prog.At(8)
			Expect(ok).To(BeFalse())
		})

		It("should reject a negative pc", func() {
			_, ok := prog.At(-4)
			Expect(ok).To(BeFalse())
		})
	})

	Describe("Load", func() {
		var tempDir string

		BeforeEach(func() {
			var err error
			tempDir, err = os.MkdirTemp("", "asm-loader-test")
			Expect(err).NotTo(HaveOccurred())
		})

		AfterEach(func() {
			_ = os.RemoveAll(tempDir)
		})

		It("should load a program file", func() {
			path := filepath.Join(tempDir, "prog.asm")
			err := os.WriteFile(path,
				[]byte("ADD x1 x2 x3\nJAL x1 8\n"), 0644)
			Expect(err).NotTo(HaveOccurred())

			prog, err := loader.Load(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(prog.Len()).To(Equal(2))
		})

		It("should report a missing file", func() {
			_, err := loader.Load(filepath.Join(tempDir, "nope.asm"))
			Expect(err).To(HaveOccurred())
		})
	})
})

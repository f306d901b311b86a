package main

import (
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"gohack/pkg/asm"
	"gohack/pkg/vm"
)

func TestToolchain(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Toolchain Suite")
}

// translateAndLoad runs VM source through both pipelines and loads the
// result into a fresh machine with the stack pointer at base.
func translateAndLoad(src, unit string, opts vm.Options, spBase int16) *machine {
	GinkgoHelper()

	assembly, err := vm.Translate(src, unit, opts)
	Expect(err).NotTo(HaveOccurred())

	words, err := asm.Assemble(assembly)
	Expect(err).NotTo(HaveOccurred())

	m, err := loadProgram(words)
	Expect(err).NotTo(HaveOccurred())
	if spBase > 0 {
		m.ram[0] = spBase
	}
	return m
}

var _ = Describe("Assembler", func() {
	It("assembles the documented four-instruction program", func() {
		words, err := asm.Assemble("@2\nD=A\n@3\nM=D")
		Expect(err).NotTo(HaveOccurred())
		Expect(words).To(Equal([]string{
			"0000000000000010",
			"1110110000010000",
			"0000000000000011",
			"1110001100001000",
		}))
	})

	It("resolves a label to the program counter of the next instruction", func() {
		// (LOOP) binds to the instruction that follows it, here the
		// jump itself.
		words, err := asm.Assemble("(LOOP)\n@LOOP\n0;JMP")
		Expect(err).NotTo(HaveOccurred())
		Expect(words[0]).To(Equal("0000000000000000"))
	})
})

var _ = Describe("Translator", func() {
	It("rejects an invalid label before code generation", func() {
		out, err := vm.Translate("label 1bad", "Test", vm.Options{})
		Expect(err).To(MatchError(vm.ErrInvalidLabel))
		Expect(out).To(BeEmpty())
	})

	It("emits address arithmetic for local without inspecting runtime state", func() {
		out, err := vm.Translate("push local 0", "Test", vm.Options{})
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("@LCL"))

		// The emitted text must itself be a valid assembler input.
		_, err = asm.Assemble(out)
		Expect(err).NotTo(HaveOccurred())
	})
})

var _ = Describe("Translated programs on the machine", func() {
	It("computes 7 + 8 = 15 on the stack", func() {
		m := translateAndLoad("push constant 7\npush constant 8\nadd", "Test", vm.Options{}, 256)
		Expect(m.run(1000)).To(Succeed())
		Expect(m.ram[256]).To(Equal(int16(15)))
		Expect(m.ram[0]).To(Equal(int16(257)))
	})

	It("round-trips a constant through push and pop local", func() {
		m := translateAndLoad("push constant 4821\npop local 0", "Test", vm.Options{}, 256)
		m.ram[1] = 300 // LCL
		Expect(m.run(1000)).To(Succeed())
		Expect(m.ram[300]).To(Equal(int16(4821)))
		Expect(m.ram[0]).To(Equal(int16(256)))
	})

	It("leaves -1 for a true comparison and 0 for a false one", func() {
		m := translateAndLoad("push constant 5\npush constant 3\ngt\npush constant 2\npush constant 9\ngt", "Test", vm.Options{}, 256)
		Expect(m.run(2000)).To(Succeed())
		Expect(m.ram[256]).To(Equal(int16(-1)))
		Expect(m.ram[257]).To(Equal(int16(0)))
	})

	It("branches on any non-zero value, not only true", func() {
		src := strings.Join([]string{
			"push constant 7",
			"if-goto TAKEN",
			"push constant 1",
			"pop temp 0",
			"goto DONE",
			"label TAKEN",
			"push constant 2",
			"pop temp 0",
			"label DONE",
		}, "\n")
		m := translateAndLoad(src, "Test", vm.Options{}, 256)
		Expect(m.run(2000)).To(Succeed())
		Expect(m.ram[5]).To(Equal(int16(2)))
	})

	It("restores the caller's stack across call and return", func() {
		src := strings.Join([]string{
			"function Sys.init 0",
			"push constant 11",
			"push constant 22",
			"call Test.add 2",
			"label HALT",
			"goto HALT",
			"function Test.add 0",
			"push argument 0",
			"push argument 1",
			"add",
			"return",
		}, "\n")
		m := translateAndLoad(src, "Test", vm.Options{Bootstrap: true}, 0)
		Expect(m.run(10000)).To(Succeed())

		// Bootstrap leaves SP at 261 inside Sys.init; the two pushed
		// arguments raise it to 263. After the call returns, the
		// arguments are gone and one return value remains: SP = 262,
		// with 11 + 22 in the vacated slot.
		Expect(m.ram[0]).To(Equal(int16(262)))
		Expect(m.ram[261]).To(Equal(int16(33)))
	})

	It("zero-initializes declared locals on function entry", func() {
		src := strings.Join([]string{
			"function Sys.init 0",
			"call Test.locals 0",
			"label HALT",
			"goto HALT",
			"function Test.locals 3",
			"push local 0",
			"push local 1",
			"add",
			"push local 2",
			"add",
			"return",
		}, "\n")
		m := translateAndLoad(src, "Test", vm.Options{Bootstrap: true}, 0)
		Expect(m.run(10000)).To(Succeed())
		Expect(m.ram[261]).To(Equal(int16(0)))
	})

	It("supports recursive calls through distinct return anchors", func() {
		// sum(n) = n + sum(n-1), sum(0) = 0
		src := strings.Join([]string{
			"function Sys.init 0",
			"push constant 5",
			"call Test.sum 1",
			"label HALT",
			"goto HALT",
			"function Test.sum 0",
			"push argument 0",
			"if-goto RECURSE",
			"push constant 0",
			"return",
			"label RECURSE",
			"push argument 0",
			"push argument 0",
			"push constant 1",
			"sub",
			"call Test.sum 1",
			"add",
			"return",
		}, "\n")
		m := translateAndLoad(src, "Test", vm.Options{Bootstrap: true}, 0)
		Expect(m.run(100000)).To(Succeed())
		Expect(m.ram[261]).To(Equal(int16(15)))
	})
})

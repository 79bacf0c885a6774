package assembler

import "testing"

func TestEmptyProgramAssemblesToNoBytes(t *testing.T) {
	out, err := Assemble("\n  \n; just a comment\n")
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("out = %v, want empty", out)
	}
}

func TestImmediateAndAbsoluteEncode(t *testing.T) {
	out, err := Assemble("LDA #$05\nSTA $0200\n")
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	want := []uint8{0xA9, 0x05, 0x8D, 0x00, 0x02}
	if string(out) != string(want) {
		t.Errorf("out = % X, want % X", out, want)
	}
}

func TestForwardLabelReferenceResolvesToAbsolute(t *testing.T) {
	// JMP target references a label defined after it; JMP has no
	// Relative encoding so resolveMode must fall back to Absolute.
	out, err := Assemble("JMP target\ntarget: NOP\n")
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	want := []uint8{0x4C, 0x03, 0x80, 0xEA}
	if string(out) != string(want) {
		t.Errorf("out = % X, want % X", out, want)
	}
}

func TestBackwardBranchComputesNegativeOffset(t *testing.T) {
	// loop: NOP; BEQ loop -- branch back over the NOP and itself.
	out, err := Assemble("loop: NOP\nBEQ loop\n")
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	// BEQ is at 0x8001, length 2, so PC after fetch is 0x8003;
	// target is 0x8000, offset = 0x8000 - 0x8003 = -3.
	want := []uint8{0xEA, 0xF0, 0xFD}
	if string(out) != string(want) {
		t.Errorf("out = % X, want % X", out, want)
	}
}

func TestForwardBranchComputesPositiveOffset(t *testing.T) {
	out, err := Assemble("BEQ skip\nNOP\nskip: NOP\n")
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	// BEQ at 0x8000, length 2, PC after fetch 0x8002; target (skip) is
	// 0x8003; offset = 0x8003 - 0x8002 = 1.
	want := []uint8{0xF0, 0x01, 0xEA, 0xEA}
	if string(out) != string(want) {
		t.Errorf("out = % X, want % X", out, want)
	}
}

func TestUnknownMnemonicIsParseError(t *testing.T) {
	_, err := Assemble("FOO $01\n")
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("got %T, want *ParseError", err)
	}
	if pe.Line != 1 {
		t.Errorf("Line = %d, want 1", pe.Line)
	}
}

func TestUndefinedLabelIsParseError(t *testing.T) {
	_, err := Assemble("JMP nowhere\n")
	if _, ok := err.(*ParseError); !ok {
		t.Fatalf("got %T, want *ParseError", err)
	}
}

func TestIncompatibleAddressingModeIsParseError(t *testing.T) {
	// JMP has no Immediate encoding.
	_, err := Assemble("JMP #$01\n")
	if _, ok := err.(*ParseError); !ok {
		t.Fatalf("got %T, want *ParseError", err)
	}
}

func TestOutOfRangeBranchIsParseError(t *testing.T) {
	src := "BEQ far\n"
	for i := 0; i < 200; i++ {
		src += "NOP\n"
	}
	src += "far: NOP\n"
	_, err := Assemble(src)
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("got %T, want *ParseError", err)
	}
	if pe.Msg != "branch target out of range" {
		t.Errorf("Msg = %q", pe.Msg)
	}
}

func TestDuplicateLabelIsParseError(t *testing.T) {
	_, err := Assemble("here: NOP\nhere: NOP\n")
	if _, ok := err.(*ParseError); !ok {
		t.Fatalf("got %T, want *ParseError", err)
	}
}

func TestInvalidHexLiteralIsParseError(t *testing.T) {
	_, err := Assemble("LDA #$GG\n")
	if _, ok := err.(*ParseError); !ok {
		t.Fatalf("got %T, want *ParseError", err)
	}
}

func TestIndexedAddressingEncodes(t *testing.T) {
	out, err := Assemble("LDA ($10,X)\nSTA ($20),Y\n")
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	want := []uint8{0xA1, 0x10, 0x91, 0x20}
	if string(out) != string(want) {
		t.Errorf("out = % X, want % X", out, want)
	}
}

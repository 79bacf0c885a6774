package isa

import "testing"

func TestTableCodeMatchesIndex(t *testing.T) {
	for i := range Table {
		if int(Table[i].Code) != i {
			t.Errorf("Table[%#02x].Code = %#02x, want %#02x", i, Table[i].Code, i)
		}
	}
}

func TestTableEntriesHaveMnemonics(t *testing.T) {
	for i := range Table {
		if Table[i].Mnemonic == "" {
			t.Errorf("Table[%#02x] has no mnemonic", i)
		}
		if Table[i].Len < 1 || Table[i].Len > 3 {
			t.Errorf("Table[%#02x].Len = %d, want 1..3", i, Table[i].Len)
		}
	}
}

func TestIllegalFlagsConsistent(t *testing.T) {
	for i := range Table {
		op := &Table[i]
		if op.HighlyUnstable() && !op.Unstable() {
			t.Errorf("Table[%#02x] is HighlyUnstable but not Unstable", i)
		}
		if (op.Unstable() || op.HighlyUnstable()) && !op.Illegal() {
			t.Errorf("Table[%#02x] is Unstable/HighlyUnstable but not Illegal", i)
		}
	}
}

func TestByMnemonicAndMode(t *testing.T) {
	op, ok := ByMnemonicAndMode("LDA", Immediate)
	if !ok || op.Code != 0xA9 {
		t.Fatalf("ByMnemonicAndMode(LDA, Immediate) = %v, %v, want 0xA9, true", op, ok)
	}

	if _, ok := ByMnemonicAndMode("LDA", IndirectX); !ok {
		t.Error("ByMnemonicAndMode(LDA, IndirectX) should exist (opcode 0xA1)")
	}

	if _, ok := ByMnemonicAndMode("JMP", ZeropageX); ok {
		t.Error("ByMnemonicAndMode(JMP, ZeropageX) should not exist")
	}
}

func TestKnownMnemonic(t *testing.T) {
	if !KnownMnemonic("NOP") {
		t.Error("NOP should be known")
	}
	if KnownMnemonic("XYZ") {
		t.Error("XYZ should not be known")
	}
}

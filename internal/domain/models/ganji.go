package models

import "fmt"

// Element is one of the five phases.
type Element int

const (
	ElementWood Element = iota
	ElementFire
	ElementEarth
	ElementMetal
	ElementWater
)

var elementNames = [...]string{"목", "화", "토", "금", "수"}

func (e Element) String() string {
	if e < 0 || int(e) >= len(elementNames) {
		return ""
	}
	return elementNames[e]
}

// Generates returns the element this one feeds (wood → fire → earth → metal → water → wood).
func (e Element) Generates() Element { return (e + 1) % 5 }

// Controls returns the element this one overcomes (wood → earth, fire → metal, ...).
func (e Element) Controls() Element { return (e + 2) % 5 }

func (e Element) MarshalText() ([]byte, error) { return []byte(e.String()), nil }

func (e *Element) UnmarshalText(b []byte) error {
	v, ok := ParseElement(string(b))
	if !ok {
		return fmt.Errorf("unknown element %q", string(b))
	}
	*e = v
	return nil
}

// ParseElement resolves a Hangul element name.
func ParseElement(s string) (Element, bool) {
	for i, n := range elementNames {
		if n == s {
			return Element(i), true
		}
	}
	return 0, false
}

// Stem is one of the ten heavenly stems. Even indexes are yang.
type Stem int

const (
	StemGap Stem = iota
	StemEul
	StemByeong
	StemJeong
	StemMu
	StemGi
	StemGyeong
	StemSin
	StemIm
	StemGye
)

// StemCount is the size of the stem cycle.
const StemCount = 10

var stemNames = [...]string{"갑", "을", "병", "정", "무", "기", "경", "신", "임", "계"}

func (s Stem) String() string {
	if s < 0 || int(s) >= len(stemNames) {
		return ""
	}
	return stemNames[s]
}

// Element is fixed per stem pair: 갑을 wood, 병정 fire, 무기 earth, 경신 metal, 임계 water.
func (s Stem) Element() Element { return Element(int(s) / 2) }

// Yang reports the stem polarity.
func (s Stem) Yang() bool { return int(s)%2 == 0 }

// Valid reports whether s is inside the cycle.
func (s Stem) Valid() bool { return s >= 0 && s < StemCount }

func (s Stem) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Stem) UnmarshalText(b []byte) error {
	v, ok := ParseStem(string(b))
	if !ok {
		return fmt.Errorf("unknown stem %q", string(b))
	}
	*s = v
	return nil
}

// ParseStem resolves a Hangul stem name.
func ParseStem(s string) (Stem, bool) {
	for i, n := range stemNames {
		if n == s {
			return Stem(i), true
		}
	}
	return 0, false
}

// StemAt wraps any integer into the stem cycle.
func StemAt(i int) Stem { return Stem(((i % StemCount) + StemCount) % StemCount) }

// Branch is one of the twelve earthly branches, 자 first.
type Branch int

const (
	BranchJa Branch = iota
	BranchChuk
	BranchIn
	BranchMyo
	BranchJin
	BranchSa
	BranchO
	BranchMi
	BranchSin
	BranchYu
	BranchSul
	BranchHae
)

// BranchCount is the size of the branch cycle.
const BranchCount = 12

var branchNames = [...]string{"자", "축", "인", "묘", "진", "사", "오", "미", "신", "유", "술", "해"}

var branchElements = [...]Element{
	ElementWater, ElementEarth, ElementWood, ElementWood, ElementEarth, ElementFire,
	ElementFire, ElementEarth, ElementMetal, ElementMetal, ElementEarth, ElementWater,
}

func (b Branch) String() string {
	if b < 0 || int(b) >= len(branchNames) {
		return ""
	}
	return branchNames[b]
}

func (b Branch) Element() Element { return branchElements[b] }

// Yang follows the cycle parity (자 yang, 축 yin, ...).
func (b Branch) Yang() bool { return int(b)%2 == 0 }

func (b Branch) Valid() bool { return b >= 0 && b < BranchCount }

func (b Branch) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

func (b *Branch) UnmarshalText(t []byte) error {
	v, ok := ParseBranch(string(t))
	if !ok {
		return fmt.Errorf("unknown branch %q", string(t))
	}
	*b = v
	return nil
}

// ParseBranch resolves a Hangul branch name.
func ParseBranch(s string) (Branch, bool) {
	for i, n := range branchNames {
		if n == s {
			return Branch(i), true
		}
	}
	return 0, false
}

// BranchAt wraps any integer into the branch cycle.
func BranchAt(i int) Branch { return Branch(((i % BranchCount) + BranchCount) % BranchCount) }

// Ganji is a stem/branch pair labelling a year, month, day or hour.
type Ganji struct {
	Stem   Stem   `json:"stem" yaml:"stem"`
	Branch Branch `json:"branch" yaml:"branch"`
}

func (g Ganji) String() string { return g.Stem.String() + g.Branch.String() }

// ParseGanji parses a two-syllable pair such as "갑자".
func ParseGanji(s string) (Ganji, bool) {
	r := []rune(s)
	if len(r) != 2 {
		return Ganji{}, false
	}
	st, ok := ParseStem(string(r[0]))
	if !ok {
		return Ganji{}, false
	}
	br, ok := ParseBranch(string(r[1]))
	if !ok {
		return Ganji{}, false
	}
	return Ganji{Stem: st, Branch: br}, true
}

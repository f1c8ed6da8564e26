package highlight

import (
	"strings"
	"testing"

	"github.com/snipframe-cloud/snipframe/internal/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type HighlightTestSuite struct {
	suite.Suite
	h   *Highlighter
	syn theme.Syntax
}

func (s *HighlightTestSuite) SetupTest() {
	s.h = New()
	s.syn = theme.DefaultDark().Syntax
}

func (s *HighlightTestSuite) TestLineStructure() {
	code := "package main\n\nfunc main() {\n}"
	res, err := s.h.Highlight(code, "go", s.syn)

	assert.Nil(s.T(), err)
	assert.Equal(s.T(), 4, res.TotalLines)
	assert.Equal(s.T(), 1, res.Lines[0].Number)
	assert.Equal(s.T(), 4, res.Lines[3].Number)
	assert.Empty(s.T(), res.Lines[1].Segments)
}

func (s *HighlightTestSuite) TestTrailingNewlineDoesNotAddLine() {
	res, err := s.h.Highlight("x = 1\n", "python", s.syn)

	assert.Nil(s.T(), err)
	assert.Equal(s.T(), 1, res.TotalLines)
}

func (s *HighlightTestSuite) TestKeywordsUseKeywordColor() {
	res, err := s.h.Highlight("func main() {}", "go", s.syn)
	assert.Nil(s.T(), err)

	var keywordSeen bool
	for _, seg := range res.Lines[0].Segments {
		if seg.Text == "func" {
			keywordSeen = true
			assert.Equal(s.T(), s.syn.Keyword, seg.Color)
			assert.True(s.T(), seg.Bold)
		}
	}
	assert.True(s.T(), keywordSeen)
}

func (s *HighlightTestSuite) TestCommentsAreItalic() {
	res, err := s.h.Highlight("// a comment\n", "go", s.syn)
	assert.Nil(s.T(), err)

	assert.NotEmpty(s.T(), res.Lines[0].Segments)
	seg := res.Lines[0].Segments[0]
	assert.Equal(s.T(), s.syn.Comment, seg.Color)
	assert.True(s.T(), seg.Italic)
}

func (s *HighlightTestSuite) TestStringsUseStringColor() {
	res, err := s.h.Highlight(`name = "world"`, "python", s.syn)
	assert.Nil(s.T(), err)

	var joined []string
	var stringColorSeen bool
	for _, seg := range res.Lines[0].Segments {
		joined = append(joined, seg.Text)
		if strings.Contains(seg.Text, "world") {
			stringColorSeen = seg.Color == s.syn.String
		}
	}
	assert.Equal(s.T(), `name = "world"`, strings.Join(joined, ""))
	assert.True(s.T(), stringColorSeen)
}

func (s *HighlightTestSuite) TestUnknownLanguageFallsBack() {
	res, err := s.h.Highlight("some plain text", "no-such-language", s.syn)

	assert.Nil(s.T(), err)
	assert.Equal(s.T(), 1, res.TotalLines)
	assert.NotEmpty(s.T(), res.Lines[0].Segments)
}

func (s *HighlightTestSuite) TestSegmentsRoundTripSource() {
	code := "def add(a, b):\n    return a + b"
	res, err := s.h.Highlight(code, "python", s.syn)
	assert.Nil(s.T(), err)

	var rebuilt strings.Builder
	for i, line := range res.Lines {
		if i > 0 {
			rebuilt.WriteString("\n")
		}
		for _, seg := range line.Segments {
			rebuilt.WriteString(seg.Text)
		}
	}
	assert.Equal(s.T(), code, rebuilt.String())
}

func (s *HighlightTestSuite) TestLexerCacheReuse() {
	first := s.h.lexer("go")
	second := s.h.lexer("go")
	assert.Same(s.T(), first, second)
}

func TestHighlightTestSuite(t *testing.T) {
	suite.Run(t, new(HighlightTestSuite))
}

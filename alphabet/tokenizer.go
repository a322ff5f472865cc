package alphabet

import (
	"github.com/derekparker/trie"
)

// tokenizer recognises alphabet symbols inside free text by longest match.
// The trie stores every symbol with its alphabet index as metadata.
type tokenizer struct {
	symbols *trie.Trie
}

func newTokenizer(a Alphabet[string]) *tokenizer {
	t := trie.New()
	for i := 0; i < a.Size(); i++ {
		t.Add(a.Get(i), i)
	}

	return &tokenizer{symbols: t}
}

// match returns the alphabet index and byte length of the longest symbol
// starting at s[pos:]. n == 0 means no symbol starts there.
func (tk *tokenizer) match(s string, pos int) (index, n int) {
	index = -1
	for end := pos + 1; end <= len(s); end++ {
		prefix := s[pos:end]
		if !tk.symbols.HasKeysWithPrefix(prefix) {
			break
		}
		if node, ok := tk.symbols.Find(prefix); ok {
			index, n = node.Meta().(int), end-pos
		}
	}

	return index, n
}

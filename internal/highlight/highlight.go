// dnf-extra-tests - acceptance tests for the DNF package manager
// Copyright (C) 2025 The dnf-extra-tests Authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package highlight

import (
	"bytes"
	"io"

	"github.com/alecthomas/chroma/v2/quick"
)

const DefaultStyle = "monokai"

// Syntax renders the content of r with terminal colours for lexer.
func Syntax(r io.Reader, lexer, style string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	w := &bytes.Buffer{}
	err = quick.Highlight(w, string(data), lexer, "terminal256", style)
	return w.String(), err
}

// Write copies content to w, highlighted when colour is set.
func Write(w io.Writer, content []byte, lexer string, colour bool) error {
	if !colour {
		_, err := w.Write(content)
		return err
	}
	out, err := Syntax(bytes.NewReader(content), lexer, DefaultStyle)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

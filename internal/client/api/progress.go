package api

import "io"

// progressReader reports cumulative read progress as a percentage in [0,100].
// The callback fires only when the integer percentage changes, so a caller
// sees at most 100 invocations per transfer.
type progressReader struct {
	r     io.Reader
	total int64
	fn    func(percent int)

	read int64
	last int
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 && p.fn != nil && p.total > 0 {
		p.read += int64(n)
		pct := int(p.read * 100 / p.total)
		if pct > 100 {
			pct = 100
		}
		if pct != p.last {
			p.last = pct
			p.fn(pct)
		}
	}
	return n, err
}

package core

import "io"

// NewProgressReader wraps r so that every read reports cumulative progress
// as a percentage of total. Reported percentages never decrease and never
// exceed 100. When total is not positive or onProgress is nil, r is returned
// unwrapped and no callbacks happen.
func NewProgressReader(r io.Reader, total int64, onProgress func(pct float64)) io.Reader {
	if onProgress == nil || total <= 0 {
		return r
	}
	return &progressReader{r: r, total: total, onProgress: onProgress}
}

type progressReader struct {
	r          io.Reader
	total      int64
	read       int64
	last       float64
	onProgress func(float64)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.read += int64(n)
		pct := float64(p.read) / float64(p.total) * 100
		if pct > 100 {
			pct = 100
		}
		if pct > p.last {
			p.last = pct
			p.onProgress(pct)
		}
	}
	return n, err
}

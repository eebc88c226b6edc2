package downloader

import (
	"fmt"
	"io"
	"net/http"
	"os"
)

// Download streams url into out, writing to out.part first so an
// interrupted transfer never leaves a truncated matrix file behind.
func Download(url, out string) error {
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("http error: %s", resp.Status)
	}
	tmp := out + ".part"
	f, err := os.Create(tmp)
	if err != nil { return err }
	src := io.Reader(resp.Body)
	if resp.ContentLength > 0 {
		src = &progressReader{r: resp.Body, total: resp.ContentLength}
	}
	_, err = io.Copy(f, src)
	if cerr := f.Close(); err == nil { err = cerr }
	if err != nil {
		os.Remove(tmp)
		return err
	}
	if resp.ContentLength > 0 {
		fmt.Fprintln(os.Stderr)
	}
	return os.Rename(tmp, out)
}

type progressReader struct {
	r         io.Reader
	total     int64
	done      int64
	lastTenth int64
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	p.done += int64(n)
	if tenth := p.done * 10 / p.total; tenth > p.lastTenth {
		p.lastTenth = tenth
		fmt.Fprintf(os.Stderr, " %d%%", tenth*10)
	}
	return n, err
}

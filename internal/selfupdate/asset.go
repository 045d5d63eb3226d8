package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

// asset is the release archive for one platform and the executable inside it.
type asset struct {
	archive string
	binary  string
}

// releaseArch maps GOARCH to the architecture names used in archive names.
var releaseArch = map[string]string{
	"amd64": "x86_64",
	"arm64": "arm64",
	"386":   "i386",
}

// platformAsset names the archive built for goos/goarch. macOS ships one
// universal archive.
func platformAsset(goos, goarch string) (asset, error) {
	var osName, ext, binary string
	switch goos {
	case "darwin":
		return asset{archive: "adaptiq_Darwin_all.tar.gz", binary: "adaptiq"}, nil
	case "linux":
		osName, ext, binary = "Linux", ".tar.gz", "adaptiq"
	case "windows":
		osName, ext, binary = "Windows", ".zip", "adaptiq.exe"
	default:
		return asset{}, fmt.Errorf("unsupported operating system: %s", goos)
	}
	arch, ok := releaseArch[goarch]
	if !ok {
		return asset{}, fmt.Errorf("unsupported architecture: %s", goarch)
	}
	return asset{archive: fmt.Sprintf("adaptiq_%s_%s%s", osName, arch, ext), binary: binary}, nil
}

// extract pulls the executable out of the downloaded archive.
func (a asset) extract(data []byte) ([]byte, error) {
	var (
		bin []byte
		err error
	)
	if strings.HasSuffix(a.archive, ".zip") {
		bin, err = fromZip(data, a.binary)
	} else {
		bin, err = fromTarGz(data, a.binary)
	}
	if err != nil {
		return nil, err
	}
	if bin == nil {
		return nil, fmt.Errorf("binary %q not found in %s", a.binary, a.archive)
	}
	return bin, nil
}

func fromTarGz(data []byte, name string) ([]byte, error) {
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open gzip: %w", err)
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read tar: %w", err)
		}
		if hdr.Typeflag == tar.TypeReg && path.Base(hdr.Name) == name {
			return io.ReadAll(tr)
		}
	}
}

func fromZip(data []byte, name string) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || path.Base(f.Name) != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer func() { _ = rc.Close() }()
		return io.ReadAll(rc)
	}
	return nil, nil
}

// checksums maps file names to the hex SHA-256 listed in checksums.txt.
type checksums map[string]string

// parseChecksums reads "<hex>  <name>" lines. A leading '*' on the name
// (binary mode in sha256sum output) is dropped; other lines are ignored.
func parseChecksums(data []byte) checksums {
	sums := checksums{}
	for _, line := range strings.Split(string(data), "\n") {
		f := strings.Fields(line)
		if len(f) != 2 {
			continue
		}
		sums[strings.TrimPrefix(f[1], "*")] = strings.ToLower(f[0])
	}
	return sums
}

func (s checksums) verify(name string, data []byte) error {
	want, ok := s[name]
	if !ok {
		return fmt.Errorf("no checksum for %s in checksums.txt", name)
	}
	if got := sha256Hex(data); got != want {
		return fmt.Errorf("%w: %s: expected %s, got %s", ErrChecksum, name, want, got)
	}
	return nil
}

func sha256Hex(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

package logic

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/idelchi/goseal/internal/config"
	"github.com/idelchi/goseal/internal/fileutil"
	"github.com/idelchi/goseal/internal/frame"
	"github.com/idelchi/goseal/pkg/seal"
)

// frameHeaderSize is the size of the authenticated header goseal puts on
// every frame: the key fingerprint followed by the frame's nonce, big-endian.
const frameHeaderSize = fingerprintSize + 8

// readBufferSize bounds how much input is read per iteration when opening.
const readBufferSize = 32 * 1024

// result represents the outcome of processing a single file.
type result struct {
	input      string
	output     string
	outputSize int64
	err        error
}

// Processor seals or opens files using a shared session key.
type Processor struct {
	// cfg contains runtime configuration options
	cfg *config.Config

	// key stores raw session key bytes
	key []byte

	// fingerprint identifies the key in frame headers
	fingerprint []byte

	// results channels processing outcomes to the printer goroutine
	results chan result
}

// NewProcessor creates a Processor for the given configuration and key.
func NewProcessor(cfg *config.Config, sessionKey []byte) *Processor {
	return &Processor{
		cfg:         cfg,
		key:         sessionKey,
		fingerprint: Fingerprint(sessionKey),
		results:     make(chan result, len(cfg.Files)),
	}
}

// ProcessFiles concurrently seals or opens all configured files.
// Returns the number of successfully processed files, the number of errors,
// and the total output size.
func (p *Processor) ProcessFiles() (processed, errored int, totalSize int64, err error) {
	group := errgroup.Group{}
	group.SetLimit(p.cfg.Parallel)

	done := make(chan struct{})

	go func() {
		defer close(done)

		for res := range p.results {
			if res.err != nil {
				errored++

				fmt.Fprintf(os.Stderr, "Error processing %q: %v\n", res.input, res.err)
			} else {
				processed++

				totalSize += res.outputSize

				if !p.cfg.Quiet {
					fmt.Printf("Processed %q -> %q\n", res.input, res.output) //nolint:forbidigo
				}
			}

			if p.cfg.Delete && res.err == nil {
				if err := os.Remove(res.input); err != nil {
					fmt.Fprintf(os.Stderr, "Error deleting %q: %v\n", res.input, err)
				}

				if !p.cfg.Quiet {
					fmt.Printf("Deleted %q\n", res.input) //nolint:forbidigo
				}
			}
		}
	}()

	for _, file := range p.cfg.Files {
		group.Go(func() error {
			outPath := p.outputPath(file)

			size, err := p.processFile(file, outPath)
			if err != nil {
				p.results <- result{input: file, err: err}

				return err
			}

			p.results <- result{input: file, output: outPath, outputSize: size}

			return nil
		})
	}

	err = group.Wait()

	close(p.results)

	<-done // Wait for printer to finish

	if err != nil {
		return processed, errored, totalSize, fmt.Errorf("processing files: %w", err)
	}

	return processed, errored, totalSize, nil
}

// processFile seals or opens a single file, writing through a temp file and
// renaming atomically on completion.
func (p *Processor) processFile(filename, outPath string) (size int64, err error) {
	tc, err := fileutil.NewTempContext(filename, outPath)
	if err != nil {
		return 0, fmt.Errorf("preparing atomic write: %w", err)
	}

	defer tc.CleanupOnError(&err)

	inFile, err := os.Open(filepath.Clean(filename))
	if err != nil {
		return 0, fmt.Errorf("opening input file: %w", err)
	}
	defer inFile.Close()

	if p.cfg.Open {
		err = p.openStream(filename, inFile, tc.TmpFile)
	} else {
		err = p.sealStream(inFile, tc.TmpFile)
	}

	if err != nil {
		return 0, err
	}

	const ownerReadWrite = 0o600

	if err := os.Chmod(tc.TmpName, ownerReadWrite); err != nil {
		return 0, fmt.Errorf("setting file permissions: %w", err)
	}

	if err := tc.TmpFile.Close(); err != nil {
		return 0, fmt.Errorf("closing temporary file: %w", err)
	}

	if err := inFile.Close(); err != nil {
		return 0, fmt.Errorf("closing input file: %w", err)
	}

	if err := os.Rename(tc.TmpName, outPath); err != nil {
		return 0, fmt.Errorf("renaming output file: %w", err)
	}

	size, err = fileutil.FinalizeOutput(outPath, p.cfg.PreserveTimestamps, tc.SrcInfo.ModTime())
	if err != nil {
		return 0, fmt.Errorf("finalizing output: %w", err)
	}

	return size, nil
}

// newSession creates a session keyed for this processor.
func (p *Processor) newSession() (*seal.Session, error) {
	sess, err := seal.New(p.cfg.MaxPacket)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	if err := sess.SetKey(p.key); err != nil {
		return nil, fmt.Errorf("setting key: %w", err)
	}

	return sess, nil
}

// sealStream chunks reader into frames and writes them to writer. Each frame
// carries a header of [fingerprint][nonce]; the nonce starts at a random base
// drawn for the file and increments per frame, so no two frames share a
// keystream.
func (p *Processor) sealStream(reader io.Reader, writer io.Writer) error {
	sess, err := p.newSession()
	if err != nil {
		return err
	}

	base := sess.Nonce()
	header := make([]byte, frameHeaderSize)
	buf := make([]byte, chunkSize(sess.StreamCap()))

	var index int64

	for {
		n, readErr := io.ReadFull(reader, buf)
		if readErr != nil && !errors.Is(readErr, io.EOF) && !errors.Is(readErr, io.ErrUnexpectedEOF) {
			return fmt.Errorf("reading input: %w", readErr)
		}

		for _, payload := range splitAligned(buf[:n]) {
			nonce := base + index

			sess.SetNonce(nonce)
			copy(header, p.fingerprint)
			binary.BigEndian.PutUint64(header[fingerprintSize:], uint64(nonce)) //nolint:gosec // two's-complement round trip

			pkt, err := sess.Encode(header, payload)
			if err != nil {
				return fmt.Errorf("encoding frame: %w", err)
			}

			if _, err := writer.Write(pkt); err != nil {
				return fmt.Errorf("writing frame: %w", err)
			}

			index++
		}

		if readErr != nil {
			return nil // EOF, possibly after a short final chunk
		}
	}
}

// openStream feeds reader through a decoding session and writes recovered
// payloads to writer. Frames with a foreign key fingerprint are dropped;
// corrupted stretches are skipped by the session's fuzz recovery.
func (p *Processor) openStream(filename string, reader io.Reader, writer io.Writer) error {
	sess, err := p.newSession()
	if err != nil {
		return err
	}

	var skipped int64

	validate := func(header []byte) bool {
		if len(header) != frameHeaderSize || !bytes.Equal(header[:fingerprintSize], p.fingerprint) {
			skipped++

			return false
		}

		sess.SetNonce(int64(binary.BigEndian.Uint64(header[fingerprintSize:]))) //nolint:gosec // two's-complement round trip

		return true
	}

	buf := make([]byte, readBufferSize)

	var fed, recovered int64

	for {
		n, readErr := reader.Read(buf[:min(sess.StreamLeft(), len(buf))])
		if n > 0 {
			fed += int64(n)

			sess.Feed(buf[:n])
		}

		for {
			before := skipped

			payload, decodeErr := sess.Decode(validate)
			if errors.Is(decodeErr, seal.ErrNoData) {
				// A rejected frame was still consumed, so more frames
				// may sit behind it; only a stalled buffer ends the drain.
				if skipped > before {
					continue
				}

				break
			}

			if decodeErr != nil {
				return fmt.Errorf("decoding frame: %w", decodeErr)
			}

			recovered += int64(len(payload))

			if _, err := writer.Write(payload); err != nil {
				return fmt.Errorf("writing payload: %w", err)
			}
		}

		if errors.Is(readErr, io.EOF) {
			break
		}

		if readErr != nil {
			return fmt.Errorf("reading input: %w", readErr)
		}
	}

	if fed > 0 && recovered == 0 {
		return errors.New("no frames recovered: wrong key or corrupted input")
	}

	if skipped > 0 {
		fmt.Fprintf(os.Stderr, "Skipped %d frames with a foreign key fingerprint in %q\n", skipped, filename)
	}

	return nil
}

// chunkSize returns the per-frame payload size for a stream capacity: the
// largest padded body that fits alongside the preamble and header, less one
// byte so every full chunk gets real padding on the wire.
func chunkSize(capacity int) int {
	return (capacity-frame.PreambleSize-frameHeaderSize)/frame.BlockSize*frame.BlockSize - 1
}

// splitAligned splits a final short chunk whose length is an exact block
// multiple into two unaligned payloads. Unpadded bodies are ambiguous to the
// receiver (the plaintext tail can mimic padding), so no emitted payload may
// be block-aligned.
func splitAligned(payload []byte) [][]byte {
	if len(payload) == 0 {
		return nil
	}

	if len(payload)%frame.BlockSize == 0 {
		return [][]byte{payload[:len(payload)-1], payload[len(payload)-1:]}
	}

	return [][]byte{payload}
}

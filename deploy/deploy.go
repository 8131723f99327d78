package deploy

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"

	"favigen/config"
	"favigen/favicon"
)

// Deployer distributes the generated favicon set to additional destinations
type Deployer struct {
	cfg *config.Config
}

// NewDeployer creates a new deployer
func NewDeployer(cfg *config.Config) *Deployer {
	return &Deployer{cfg: cfg}
}

// Deploy copies the generated files into each configured directory and,
// when a target is set, rsyncs the output directory to the remote host.
// With nothing configured it is a no-op.
func (d *Deployer) Deploy() error {
	if len(d.cfg.Deploy.CopyTo) == 0 && d.cfg.Deploy.RsyncTarget == "" {
		return nil
	}

	for _, dir := range d.cfg.Deploy.CopyTo {
		if err := d.copyOutputs(dir); err != nil {
			return fmt.Errorf("failed to copy favicons to %s: %w", dir, err)
		}
	}

	if d.cfg.Deploy.RsyncTarget != "" {
		if err := d.rsyncOutputs(); err != nil {
			return fmt.Errorf("failed to rsync favicons: %w", err)
		}
	}

	return nil
}

// copyOutputs copies the generated asset set into dir
func (d *Deployer) copyOutputs(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	for _, name := range favicon.OutputNames() {
		src := filepath.Join(d.cfg.Output.Dir, name)
		dst := filepath.Join(dir, name)
		if err := copyFile(src, dst); err != nil {
			return err
		}
	}

	log.Printf("✓ Copied favicons to %s", dir)
	return nil
}

// rsyncOutputs syncs the output directory to the remote target using rsync
func (d *Deployer) rsyncOutputs() error {
	// Trailing slash is important: sync the contents, not the directory.
	args := []string{"-az", d.cfg.Output.Dir + "/", d.cfg.Deploy.RsyncTarget}

	cmd := exec.Command("rsync", args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("rsync failed: %w\nOutput: %s", err, string(output))
	}

	log.Printf("✓ Deployed favicons to: %s", d.cfg.Deploy.RsyncTarget)
	return nil
}

// copyFile copies a single file
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer dstFile.Close()

	_, err = io.Copy(dstFile, srcFile)
	return err
}

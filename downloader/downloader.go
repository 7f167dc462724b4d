package downloader

import (
	"crypto/tls"
	"io"
	"net/http"
	"os"
	"time"

	"code.cloudfoundry.org/tlsconfig"
	bosherr "github.com/cloudfoundry/bosh-utils/errors"
	boshhttpclient "github.com/cloudfoundry/bosh-utils/httpclient"
	boshlog "github.com/cloudfoundry/bosh-utils/logger"
	boshretry "github.com/cloudfoundry/bosh-utils/retrystrategy"
	boshsys "github.com/cloudfoundry/bosh-utils/system"
)

const (
	httpDownloaderLogTag = "HTTPDownloader"

	DefaultUserAgent = "bundle-agent"

	archiveFileMode = os.FileMode(0644)
)

type Options struct {
	// Timeout bounds a single request including reading the body.
	Timeout time.Duration

	// Attempts is the number of GETs tried before giving up. Only network
	// errors and 5xx responses are retried.
	Attempts int
	Delay    time.Duration

	UserAgent string

	// CACertPath replaces the system roots with the PEM bundle at that path.
	CACertPath string
}

func DefaultOptions() Options {
	return Options{
		Timeout:   10 * time.Minute,
		Attempts:  1,
		Delay:     2 * time.Second,
		UserAgent: DefaultUserAgent,
	}
}

func withMinimumTLS12(c *tls.Config) error {
	c.MinVersion = tls.VersionTLS12
	return nil
}

func NewHTTPClient(opts Options) (*http.Client, error) {
	var clientOpts []tlsconfig.ClientOption
	if opts.CACertPath != "" {
		clientOpts = append(clientOpts, tlsconfig.WithAuthorityFromFile(opts.CACertPath))
	}

	tlsConfig, err := tlsconfig.Build(withMinimumTLS12).Client(clientOpts...)
	if err != nil {
		return nil, bosherr.WrapError(err, "Building TLS config")
	}

	return &http.Client{
		Timeout: opts.Timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			TLSClientConfig:     tlsConfig,
			TLSHandshakeTimeout: 30 * time.Second,
		},
	}, nil
}

type HTTPDownloader struct {
	fs     boshsys.FileSystem
	client *boshhttpclient.HTTPClient
	opts   Options
	logger boshlog.Logger
}

func NewHTTPDownloader(fs boshsys.FileSystem, opts Options, logger boshlog.Logger) (HTTPDownloader, error) {
	client, err := NewHTTPClient(opts)
	if err != nil {
		return HTTPDownloader{}, err
	}

	return NewHTTPDownloaderWithClient(fs, client, opts, logger), nil
}

func NewHTTPDownloaderWithClient(
	fs boshsys.FileSystem,
	client *http.Client,
	opts Options,
	logger boshlog.Logger,
) HTTPDownloader {
	return HTTPDownloader{
		fs:     fs,
		client: boshhttpclient.NewHTTPClient(client, logger),
		opts:   opts,
		logger: logger,
	}
}

// Download GETs address and writes the response body to destinationPath,
// replacing whatever is there.
func (d HTTPDownloader) Download(address, destinationPath string) error {
	attempts := d.opts.Attempts
	if attempts < 1 {
		attempts = 1
	}

	downloadRetryable := boshretry.NewRetryable(func() (bool, error) {
		return d.fetch(address, destinationPath)
	})

	return boshretry.NewAttemptRetryStrategy(attempts, d.opts.Delay, downloadRetryable, d.logger).Try()
}

func (d HTTPDownloader) fetch(address, destinationPath string) (bool, error) {
	d.logger.Debug(httpDownloaderLogTag, "Requesting '%s'", address)

	resp, err := d.client.GetCustomized(address, d.addHeaders())
	if err != nil {
		return true, bosherr.WrapErrorf(err, "Requesting '%s'", address)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if !isSuccess(resp) {
		return resp.StatusCode >= http.StatusInternalServerError,
			bosherr.Errorf("Requesting '%s': response was %d", address, resp.StatusCode)
	}

	file, err := d.fs.OpenFile(destinationPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, archiveFileMode)
	if err != nil {
		return false, bosherr.WrapErrorf(err, "Creating '%s'", destinationPath)
	}

	written, err := io.Copy(file, resp.Body)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return true, bosherr.WrapErrorf(err, "Writing '%s'", destinationPath)
	}

	d.logger.Debug(httpDownloaderLogTag, "Wrote %d bytes to '%s'", written, destinationPath)

	return false, nil
}

func (d HTTPDownloader) addHeaders() func(*http.Request) {
	return func(req *http.Request) {
		userAgent := d.opts.UserAgent
		if userAgent == "" {
			userAgent = DefaultUserAgent
		}
		req.Header.Set("User-Agent", userAgent)
	}
}

func isSuccess(resp *http.Response) bool {
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

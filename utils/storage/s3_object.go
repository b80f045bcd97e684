package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// s3Object Range指定の再取得でSeekを実現するS3オブジェクトリーダー
type s3Object struct {
	ctx        context.Context
	client     *s3.Client
	input      s3.GetObjectInput
	length     int64
	lengthOk   bool
	body       io.ReadCloser
	pos        int64
	overSought bool
}

func (o *s3Object) Read(p []byte) (n int, err error) {
	if o.overSought {
		return 0, io.EOF
	}

	n, err = o.body.Read(p)
	o.pos += int64(n)
	return
}

func (o *s3Object) Close() error {
	return o.body.Close()
}

func (o *s3Object) Seek(offset int64, whence int) (int64, error) {
	o.overSought = false

	var newPos int64
	switch whence {
	case io.SeekStart:
		newPos = offset
	case io.SeekCurrent:
		newPos = o.pos + offset
	case io.SeekEnd:
		if !o.lengthOk {
			return o.pos, errors.New("length of file unknown")
		}
		newPos = o.length + offset
		if offset >= 0 {
			o.overSought = true
			return newPos, nil
		}
	default:
		return o.pos, fmt.Errorf("invalid whence: %d", whence)
	}
	if newPos < 0 {
		return o.pos, errors.New("negative position")
	}

	if newPos == o.pos {
		return newPos, nil
	}

	if err := o.body.Close(); err != nil {
		return o.pos, err
	}

	if newPos > 0 {
		o.input.Range = aws.String(fmt.Sprintf("bytes=%d-", newPos))
	} else {
		o.input.Range = nil
	}

	output, err := o.client.GetObject(o.ctx, &o.input)
	if err != nil {
		return o.pos, err
	}

	o.body = output.Body
	o.pos = newPos
	return newPos, nil
}

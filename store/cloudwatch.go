// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// CloudWatch implements Store on top of the AWS CloudWatch dashboard API.
type CloudWatch struct {
	client *cloudwatch.Client
}

// NewCloudWatch builds a CloudWatch store. An explicit region wins; when it
// is empty the default provider chain (AWS_REGION, profile, IMDS) decides.
func NewCloudWatch(ctx context.Context, region string) (*CloudWatch, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	return &CloudWatch{client: cloudwatch.NewFromConfig(cfg)}, nil
}

func (s *CloudWatch) GetDashboard(ctx context.Context, name string) (string, error) {
	out, err := s.client.GetDashboard(ctx, &cloudwatch.GetDashboardInput{
		DashboardName: aws.String(name),
	})
	if err != nil {
		var notFound *types.DashboardNotFoundError
		if errors.As(err, &notFound) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return "", err
	}
	if aws.ToString(out.DashboardBody) == "" {
		return "", fmt.Errorf("%w: dashboard %s has no body", ErrNotFound, name)
	}
	return *out.DashboardBody, nil
}

func (s *CloudWatch) PutDashboard(ctx context.Context, name, body string) error {
	_, err := s.client.PutDashboard(ctx, &cloudwatch.PutDashboardInput{
		DashboardName: aws.String(name),
		DashboardBody: aws.String(body),
	})
	return err
}

func (s *CloudWatch) ListDashboards(ctx context.Context, nextToken string) (Page, error) {
	in := &cloudwatch.ListDashboardsInput{}
	if nextToken != "" {
		in.NextToken = aws.String(nextToken)
	}
	out, err := s.client.ListDashboards(ctx, in)
	if err != nil {
		return Page{}, err
	}
	page := Page{NextToken: aws.ToString(out.NextToken)}
	for _, entry := range out.DashboardEntries {
		if entry.DashboardName != nil {
			page.Entries = append(page.Entries, DashboardEntry{Name: *entry.DashboardName})
		}
	}
	return page, nil
}

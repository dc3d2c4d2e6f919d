package dao

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"path"

	"github.com/nitrotools/team-widget/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gocarina/gocsv"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type R2DAO struct {
	s3                S3Uploader
	bucketName        string
	pagePrefix        string
	requirementPrefix string
}

func NewR2DAO(bucketName, pagePrefix, requirementPrefix string) *R2DAO {
	return &R2DAO{
		s3:                initS3Client(),
		bucketName:        bucketName,
		pagePrefix:        pagePrefix,
		requirementPrefix: requirementPrefix,
	}
}

func NewR2DAOWithClient(bucketName, pagePrefix, requirementPrefix string, s3Client S3Uploader) *R2DAO {
	return &R2DAO{
		s3:                s3Client,
		bucketName:        bucketName,
		pagePrefix:        pagePrefix,
		requirementPrefix: requirementPrefix,
	}
}

func (d *R2DAO) SaveTeamPage(tag string, html string) error {
	key := path.Join(d.pagePrefix, TEAM_PAGE_FILENAME)
	logrus.Infof("Saving augmented page for team %s to bucket: %s with key: %s", tag, d.bucketName, key)

	_, err := d.s3.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(d.bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader([]byte(html)),
		ContentType: aws.String("text/html"),
	})
	return err
}

func (d *R2DAO) SaveRequirementInfos(mode string, reqs []models.TopRequirement) error {
	key := path.Join(d.requirementPrefix, fmt.Sprintf(REQUIREMENT_FILENAME_FORMAT, mode))

	if len(reqs) == 0 {
		logrus.Warnf("No data to save to bucket: %s with key: %s", d.bucketName, key)
		return nil
	}

	csvBytes, err := gocsv.MarshalBytes(reqs)
	if err != nil {
		return fmt.Errorf("failed to marshal csv: %w", err)
	}

	logrus.Infof("Saving %d %s requirement infos to bucket: %s with key: %s", len(reqs), mode, d.bucketName, key)
	_, err = d.s3.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(d.bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(csvBytes),
		ContentType: aws.String("text/csv"),
	})
	return err
}

func initS3Client() *s3.Client {
	// Load .env only for local dev
	_ = godotenv.Load()

	endpoint := os.Getenv("R2_ENDPOINT")
	accessKeyId := os.Getenv("R2_ACCESS_KEY_ID")
	accessKeySecret := os.Getenv("R2_SECRET_ACCESS_KEY")

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKeyId, accessKeySecret, "")),
		config.WithRegion("auto"),
	)
	if err != nil {
		log.Fatal(err)
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})
}

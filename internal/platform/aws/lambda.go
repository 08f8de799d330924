package aws

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	lambdatypes "github.com/aws/aws-sdk-go-v2/service/lambda/types"

	"github.com/imamik/lexdeploy/internal/util/retry"
)

const (
	kindFunction   = "function"
	kindPermission = "permission"
)

// roleRetryOptions bound the wait for a new role to propagate to Lambda.
var roleRetryOptions = []retry.Option{
	retry.WithMaxRetries(6),
	retry.WithInitialDelay(2 * time.Second),
	retry.WithMaxDelay(10 * time.Second),
	retry.WithRetryIf(roleNotAssumable),
}

// CreateFunction creates the function from a zip bundle.
// Returns a ConflictError if a function with the same name exists.
func (c *RealClient) CreateFunction(ctx context.Context, spec FunctionSpec) (Function, error) {
	input := &lambda.CreateFunctionInput{
		FunctionName: aws.String(spec.Name),
		Description:  optionalString(spec.Description),
		Runtime:      lambdatypes.Runtime(spec.Runtime),
		Handler:      aws.String(spec.Handler),
		Role:         aws.String(spec.RoleARN),
		Code:         &lambdatypes.FunctionCode{ZipFile: spec.ZipFile},
	}
	if spec.Timeout > 0 {
		input.Timeout = aws.Int32(spec.Timeout)
	}
	if spec.MemorySize > 0 {
		input.MemorySize = aws.Int32(spec.MemorySize)
	}

	var out *lambda.CreateFunctionOutput
	err := retry.Do(ctx, func(ctx context.Context) error {
		var err error
		out, err = c.lambda.CreateFunction(ctx, input)
		return err
	}, c.retryOptions(roleRetryOptions)...)
	if err != nil {
		return Function{}, classify(err, "create", kindFunction, spec.Name)
	}

	return Function{
		Name:             aws.ToString(out.FunctionName),
		ARN:              aws.ToString(out.FunctionArn),
		State:            string(out.State),
		StateReason:      aws.ToString(out.StateReason),
		LastUpdateStatus: string(out.LastUpdateStatus),
	}, nil
}

// GetFunction returns the function's configuration snapshot.
func (c *RealClient) GetFunction(ctx context.Context, name string) (Function, error) {
	out, err := c.lambda.GetFunction(ctx, &lambda.GetFunctionInput{FunctionName: aws.String(name)})
	if err != nil {
		return Function{}, classify(err, "get", kindFunction, name)
	}
	if out.Configuration == nil {
		return Function{}, fmt.Errorf("function %s returned no configuration", name)
	}

	cfg := out.Configuration
	return Function{
		Name:             aws.ToString(cfg.FunctionName),
		ARN:              aws.ToString(cfg.FunctionArn),
		State:            string(cfg.State),
		StateReason:      aws.ToString(cfg.StateReason),
		LastUpdateStatus: string(cfg.LastUpdateStatus),
	}, nil
}

// DeleteFunction deletes the function.
func (c *RealClient) DeleteFunction(ctx context.Context, name string) error {
	if _, err := c.lambda.DeleteFunction(ctx, &lambda.DeleteFunctionInput{FunctionName: aws.String(name)}); err != nil {
		return classify(err, "delete", kindFunction, name)
	}
	return nil
}

// AddPermission adds a statement to the function's resource policy.
// Returns a ConflictError if the statement id is taken.
func (c *RealClient) AddPermission(ctx context.Context, spec PermissionSpec) error {
	_, err := c.lambda.AddPermission(ctx, &lambda.AddPermissionInput{
		FunctionName: aws.String(spec.FunctionName),
		StatementId:  aws.String(spec.StatementID),
		Action:       aws.String(spec.Action),
		Principal:    aws.String(spec.Principal),
		SourceArn:    optionalString(spec.SourceARN),
	})
	if err != nil {
		return classify(err, "add", kindPermission, spec.StatementID)
	}
	return nil
}

// policyDocument is the subset of a resource policy read by GetPermission.
type policyDocument struct {
	Statement []struct {
		Sid       string `json:"Sid"`
		Principal struct {
			Service string `json:"Service"`
		} `json:"Principal"`
		Condition struct {
			ArnLike map[string]string `json:"ArnLike"`
		} `json:"Condition"`
	} `json:"Statement"`
}

// GetPermission looks the statement up in the function's resource policy.
func (c *RealClient) GetPermission(ctx context.Context, functionName, statementID string) (Permission, error) {
	out, err := c.lambda.GetPolicy(ctx, &lambda.GetPolicyInput{FunctionName: aws.String(functionName)})
	if err != nil {
		return Permission{}, classify(err, "get", kindPermission, statementID)
	}

	var doc policyDocument
	if err := json.Unmarshal([]byte(aws.ToString(out.Policy)), &doc); err != nil {
		return Permission{}, fmt.Errorf("failed to parse resource policy of %s: %w", functionName, err)
	}

	for _, st := range doc.Statement {
		if st.Sid != statementID {
			continue
		}
		return Permission{
			StatementID: st.Sid,
			Principal:   st.Principal.Service,
			SourceARN:   st.Condition.ArnLike["AWS:SourceArn"],
		}, nil
	}
	return Permission{}, &NotFoundError{Kind: kindPermission, Name: statementID, Code: "StatementNotFound"}
}

// RemovePermission removes the statement from the function's resource policy.
func (c *RealClient) RemovePermission(ctx context.Context, functionName, statementID string) error {
	_, err := c.lambda.RemovePermission(ctx, &lambda.RemovePermissionInput{
		FunctionName: aws.String(functionName),
		StatementId:  aws.String(statementID),
	})
	if err != nil {
		return classify(err, "remove", kindPermission, statementID)
	}
	return nil
}

func roleNotAssumable(err error) bool {
	return ErrorCode(err) == "InvalidParameterValueException" &&
		strings.Contains(strings.ToLower(err.Error()), "cannot be assumed")
}

package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
)

const kindRole = "role"

// CreateRole creates the role and attaches its managed policies.
// Returns a ConflictError if a role with the same name exists.
func (c *RealClient) CreateRole(ctx context.Context, spec RoleSpec) (Role, error) {
	out, err := c.iam.CreateRole(ctx, &iam.CreateRoleInput{
		RoleName:                 aws.String(spec.Name),
		AssumeRolePolicyDocument: aws.String(spec.TrustPolicy),
		Description:              optionalString(spec.Description),
	})
	if err != nil {
		return Role{}, classify(err, "create", kindRole, spec.Name)
	}

	if err := c.AttachRolePolicies(ctx, spec.Name, spec.PolicyARNs); err != nil {
		return Role{}, err
	}

	return Role{Name: aws.ToString(out.Role.RoleName), ARN: aws.ToString(out.Role.Arn)}, nil
}

// AttachRolePolicies attaches managed policies to the role. Attaching a
// policy that is already attached succeeds, so this is safe to repeat.
func (c *RealClient) AttachRolePolicies(ctx context.Context, name string, arns []string) error {
	for _, arn := range arns {
		_, err := c.iam.AttachRolePolicy(ctx, &iam.AttachRolePolicyInput{
			RoleName:  aws.String(name),
			PolicyArn: aws.String(arn),
		})
		if err != nil {
			return classify(err, "attach policy "+arn+" to", kindRole, name)
		}
	}
	return nil
}

// GetRole returns the role by name.
func (c *RealClient) GetRole(ctx context.Context, name string) (Role, error) {
	out, err := c.iam.GetRole(ctx, &iam.GetRoleInput{RoleName: aws.String(name)})
	if err != nil {
		return Role{}, classify(err, "get", kindRole, name)
	}
	return Role{Name: aws.ToString(out.Role.RoleName), ARN: aws.ToString(out.Role.Arn)}, nil
}

// DeleteRole detaches all managed policies, then deletes the role.
func (c *RealClient) DeleteRole(ctx context.Context, name string) error {
	paginator := iam.NewListAttachedRolePoliciesPaginator(c.iam, &iam.ListAttachedRolePoliciesInput{
		RoleName: aws.String(name),
	})
	var policies []string
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return classify(err, "list policies of", kindRole, name)
		}
		for _, p := range page.AttachedPolicies {
			policies = append(policies, aws.ToString(p.PolicyArn))
		}
	}

	for _, arn := range policies {
		_, err := c.iam.DetachRolePolicy(ctx, &iam.DetachRolePolicyInput{
			RoleName:  aws.String(name),
			PolicyArn: aws.String(arn),
		})
		if err != nil {
			return classify(err, "detach policy "+arn+" from", kindRole, name)
		}
	}

	if _, err := c.iam.DeleteRole(ctx, &iam.DeleteRoleInput{RoleName: aws.String(name)}); err != nil {
		return classify(err, "delete", kindRole, name)
	}
	return nil
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return aws.String(s)
}
